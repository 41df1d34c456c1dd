package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/xivmarket/marketboard/internal/domain"
	"github.com/xivmarket/marketboard/internal/logger"
)

var (
	testDB      *gorm.DB
	pgContainer *postgres.PostgresContainer
)

// TestMain sets up the test database before running tests
func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}

	ctx := context.Background()

	// Check if we should use an external database (for CI or local development)
	dbHost := os.Getenv("TEST_DB_HOST")
	dbPort := os.Getenv("TEST_DB_PORT")
	dbUser := os.Getenv("TEST_DB_USER")
	dbPassword := os.Getenv("TEST_DB_PASSWORD")
	dbName := os.Getenv("TEST_DB_NAME")

	var dsn string
	var err error

	if dbHost != "" {
		// Use external database
		if dbPort == "" {
			dbPort = "5432"
		}
		if dbUser == "" {
			dbUser = "postgres"
		}
		if dbPassword == "" {
			dbPassword = "postgres"
		}
		if dbName == "" {
			dbName = "test_db"
		}

		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			dbHost, dbPort, dbUser, dbPassword, dbName)

		fmt.Printf("Using external database: %s:%s/%s\n", dbHost, dbPort, dbName)
	} else {
		// Start a PostgreSQL container for testing
		pgContainer, err = postgres.Run(ctx,
			"postgres:18-alpine",
			postgres.WithDatabase("test_db"),
			postgres.WithUsername("postgres"),
			postgres.WithPassword("postgres"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(30*time.Second)),
		)
		if err != nil {
			fmt.Printf("Failed to start PostgreSQL container: %v\n", err)
			os.Exit(1)
		}

		dsn, err = pgContainer.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			fmt.Printf("Failed to get connection string: %v\n", err)
			terminateContainer(ctx)
			os.Exit(1)
		}

		fmt.Printf("Started PostgreSQL container\n")
	}

	// Connect to the database
	testDB, err = gorm.Open(pgdriver.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		fmt.Printf("Failed to connect to database: %v\n", err)
		terminateContainer(ctx)
		os.Exit(1)
	}

	// Initialize the database schema
	if err := initializeTestDatabase(testDB); err != nil {
		fmt.Printf("Failed to initialize database: %v\n", err)
		terminateContainer(ctx)
		os.Exit(1)
	}

	// Run tests
	code := m.Run()

	// Cleanup
	terminateContainer(ctx)

	os.Exit(code)
}

func terminateContainer(ctx context.Context) {
	if pgContainer != nil {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
		}
	}
}

// initializeTestDatabase runs the schema initialization SQL
func initializeTestDatabase(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	schemaPath := filepath.Join("..", "..", "db", "init_pg_db.sql")
	schemaSQL, err := os.ReadFile(schemaPath) //nolint:gosec,G304
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}

	if _, err := sqlDB.Exec(string(schemaSQL)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

// initPGTestDB wraps each test in a transaction for isolation
func initPGTestDB(t *testing.T) Store {
	tx := testDB.Begin()
	require.NotNil(t, tx)
	require.NoError(t, tx.Error)

	t.Cleanup(func() {
		tx.Rollback()
	})

	return NewPGStore(tx)
}

func pgTestSale(worldID, itemID int32, saleTime int64, quantity, pricePerUnit int32) *domain.Sale {
	buyer := "Y'shtola Rhul"
	mannequin := false
	return &domain.Sale{
		ID:             uuid.New(),
		WorldID:        worldID,
		ItemID:         itemID,
		PricePerUnit:   pricePerUnit,
		Quantity:       &quantity,
		BuyerName:      &buyer,
		OnMannequin:    &mannequin,
		SaleTime:       time.Unix(saleTime, 0).UTC(),
		UploaderIDHash: "64-hex-chars-of-uploader-hash",
	}
}

func TestPGStore_InsertAndRetrieveSales(t *testing.T) {
	if testDB == nil {
		t.Fatal("Test database not initialized")
	}
	s := initPGTestDB(t)
	ctx := context.Background()

	sales := []*domain.Sale{
		pgTestSale(74, 5057, 100, 1, 500),
		pgTestSale(74, 5057, 300, 2, 600),
		pgTestSale(74, 5057, 200, 3, 700),
		pgTestSale(75, 5057, 400, 4, 800), // different world, excluded
	}
	require.NoError(t, s.InsertSales(ctx, sales))

	got, err := s.RetrieveSalesBySaleTime(ctx, 74, 5057, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Most recent first
	assert.Equal(t, int64(300), got[0].SaleTime.Unix())
	assert.Equal(t, int64(200), got[1].SaleTime.Unix())
	assert.Equal(t, int32(2), *got[0].Quantity)

	// Unbounded retrieval returns the whole world window
	got, err = s.RetrieveSalesBySaleTime(ctx, 74, 5057, 0)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestPGStore_InsertSales_DuplicateIDsAreSkipped(t *testing.T) {
	if testDB == nil {
		t.Fatal("Test database not initialized")
	}
	s := initPGTestDB(t)
	ctx := context.Background()

	sale := pgTestSale(74, 5057, 100, 1, 500)
	require.NoError(t, s.InsertSales(ctx, []*domain.Sale{sale}))
	require.NoError(t, s.InsertSales(ctx, []*domain.Sale{sale}))

	got, err := s.RetrieveSalesBySaleTime(ctx, 74, 5057, 0)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestPGStore_InsertSales_RejectsInvalidSale(t *testing.T) {
	if testDB == nil {
		t.Fatal("Test database not initialized")
	}
	s := initPGTestDB(t)
	ctx := context.Background()

	invalid := pgTestSale(74, 5057, 100, 1, 500)
	invalid.Quantity = nil

	err := s.InsertSales(ctx, []*domain.Sale{invalid})
	assert.Error(t, err)
}

func TestPGStore_TradeVolume(t *testing.T) {
	if testDB == nil {
		t.Fatal("Test database not initialized")
	}
	s := initPGTestDB(t)
	ctx := context.Background()

	sales := []*domain.Sale{
		pgTestSale(74, 5057, 100, 2, 500),  // 1000 gil
		pgTestSale(74, 5057, 200, 3, 100),  // 300 gil
		pgTestSale(74, 5057, 5000, 10, 10), // outside the range
	}
	require.NoError(t, s.InsertSales(ctx, sales))

	volume, err := s.RetrieveTradeVolume(ctx, 74, 5057, time.Unix(0, 0), time.Unix(1000, 0))
	require.NoError(t, err)
	assert.Equal(t, int64(5), volume.Units)
	assert.Equal(t, int64(1300), volume.Gil)

	// No sales in range sums to zero, not an error
	volume, err = s.RetrieveTradeVolume(ctx, 99, 5057, time.Unix(0, 0), time.Unix(1000, 0))
	require.NoError(t, err)
	assert.Zero(t, volume.Units)
	assert.Zero(t, volume.Gil)
}

func TestPGStore_MarketItemUpsert(t *testing.T) {
	if testDB == nil {
		t.Fatal("Test database not initialized")
	}
	s := initPGTestDB(t)
	ctx := context.Background()

	got, err := s.RetrieveMarketItem(ctx, 74, 5057)
	require.NoError(t, err)
	assert.Nil(t, got)

	first := time.Unix(1000, 0).UTC()
	require.NoError(t, s.InsertMarketItem(ctx, &domain.MarketItem{WorldID: 74, ItemID: 5057, LastUploadTime: first}))

	got, err = s.RetrieveMarketItem(ctx, 74, 5057)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, first, got.LastUploadTime.UTC())

	// A second write for the same pair refreshes in place
	second := time.Unix(2000, 0).UTC()
	require.NoError(t, s.UpdateMarketItem(ctx, &domain.MarketItem{WorldID: 74, ItemID: 5057, LastUploadTime: second}))

	got, err = s.RetrieveMarketItem(ctx, 74, 5057)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, second, got.LastUploadTime.UTC())
}

func TestPGStore_TrustedSources(t *testing.T) {
	if testDB == nil {
		t.Fatal("Test database not initialized")
	}
	s := initPGTestDB(t)
	ctx := context.Background()

	hash := "128-hex-chars-of-api-key-hash"

	got, err := s.RetrieveTrustedSource(ctx, hash)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, s.InsertTrustedSource(ctx, &domain.TrustedSource{
		APIKeySHA512: hash,
		Name:         "test-client",
		CanUpload:    true,
	}))

	got, err = s.RetrieveTrustedSource(ctx, hash)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "test-client", got.Name)
	assert.True(t, got.CanUpload)
	assert.Zero(t, got.UploadCount)

	require.NoError(t, s.IncrementTrustedSourceUploads(ctx, hash))
	require.NoError(t, s.IncrementTrustedSourceUploads(ctx, hash))

	got, err = s.RetrieveTrustedSource(ctx, hash)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(2), got.UploadCount)
}

func TestPGStore_FlaggedUploaders(t *testing.T) {
	if testDB == nil {
		t.Fatal("Test database not initialized")
	}
	s := initPGTestDB(t)
	ctx := context.Background()

	hash := "64-hex-chars-of-flagged-uploader-hash"

	got, err := s.RetrieveFlaggedUploader(ctx, hash)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, s.InsertFlaggedUploader(ctx, &domain.FlaggedUploader{UploaderIDSHA256: hash}))
	// Flagging twice is idempotent
	require.NoError(t, s.InsertFlaggedUploader(ctx, &domain.FlaggedUploader{UploaderIDSHA256: hash}))

	got, err = s.RetrieveFlaggedUploader(ctx, hash)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, hash, got.UploaderIDSHA256)
}
