package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/mphinance/ulty-tracker/internal/repository"
	"github.com/mphinance/ulty-tracker/internal/service"
	"github.com/mphinance/ulty-tracker/internal/session"
	"github.com/mphinance/ulty-tracker/internal/yahoo"
)

// TestSymbol is the ticker used by service constructors in tests.
const TestSymbol = "ULTY"

// TestHorizonEnd bounds the estimated schedule in tests. It sits at the end
// of next year so generated estimates always extend past the present.
var TestHorizonEnd = Day(time.Now().UTC().Year()+1, time.December, 31)

func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()

	return service.NewTransactionService(repository.NewTransactionRepository(db))
}

func NewTestDividendService(t *testing.T, db *sql.DB, yahooClient yahoo.Client) *service.DividendService {
	t.Helper()

	return service.NewDividendService(
		repository.NewDividendRepository(db),
		yahooClient,
		TestSymbol,
		TestHorizonEnd,
	)
}

func NewTestPriceService(t *testing.T, db *sql.DB, yahooClient yahoo.Client) *service.PriceService {
	t.Helper()

	return service.NewPriceService(
		repository.NewSettingRepository(db),
		yahooClient,
		TestSymbol,
	)
}

func NewTestPortfolioService(t *testing.T, db *sql.DB, yahooClient yahoo.Client) *service.PortfolioService {
	t.Helper()

	return service.NewPortfolioService(
		NewTestTransactionService(t, db),
		NewTestDividendService(t, db, yahooClient),
		NewTestPriceService(t, db, yahooClient),
	)
}

func NewTestImportService(t *testing.T, db *sql.DB) *service.ImportService {
	t.Helper()

	return service.NewImportService(NewTestTransactionService(t, db))
}

func NewTestSessionService(t *testing.T, db *sql.DB, yahooClient yahoo.Client) *service.SessionService {
	t.Helper()

	return service.NewSessionService(
		NewTestCodec(t),
		NewTestTransactionService(t, db),
		NewTestPriceService(t, db, yahooClient),
	)
}

// NewTestSessionServiceWithCodec wires a session service around an explicit
// codec, letting share/restore tests span two databases under one key.
func NewTestSessionServiceWithCodec(
	t *testing.T,
	codec *session.Codec,
	transactionService *service.TransactionService,
	priceService *service.PriceService,
) *service.SessionService {
	t.Helper()

	return service.NewSessionService(codec, transactionService, priceService)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// NewTestCodec creates a session codec with a freshly generated key.
func NewTestCodec(t *testing.T) *session.Codec {
	t.Helper()

	codec, err := session.NewCodec(GenerateFernetKey(t))
	if err != nil {
		t.Fatalf("Failed to create test codec: %v", err)
	}
	return codec
}

// GenerateFernetKey returns a base64-encoded fernet key for test configs.
func GenerateFernetKey(t *testing.T) string {
	t.Helper()

	var key fernet.Key
	if err := key.Generate(); err != nil {
		t.Fatalf("Failed to generate fernet key: %v", err)
	}
	return key.Encode()
}
