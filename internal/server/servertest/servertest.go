// Package servertest starts a seeded API on in-memory SQLite for tests.
package servertest

import (
	"net"
	"testing"
	"time"

	"tokoadmin/internal/config"
	"tokoadmin/internal/metrics"
	"tokoadmin/internal/models"
	"tokoadmin/internal/repositories"
	"tokoadmin/internal/server"
	"tokoadmin/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Seeded credentials.
const (
	OwnerUsername  = "owner"
	OwnerPassword  = "ownerpass"
	OutletUsername = "kasir"
	OutletPassword = "kasirpass"
)

// Fixture is a seeded API instance.
type Fixture struct {
	*server.App
	DB      *gorm.DB
	Metrics *metrics.Recorder
	Outlet  models.Warehouse
	Other   models.Warehouse
	Product models.Product
}

// DetailID returns the id of the seeded product's first detail.
func (f *Fixture) DetailID() string {
	return f.Product.Details[0].ID
}

// New builds the app on a private in-memory database and seeds it with an
// owner, an outlet user, two outlets and one product.
func New(t testing.TB) *Fixture {
	t.Helper()

	cfg := config.Config{
		DBDriver:       "sqlite",
		DatabaseDSN:    "file:" + uuid.New().String() + "?mode=memory&cache=shared",
		JWTSecret:      "test_jwt_secret",
		JWTTTL:         time.Hour,
		MetricsEnabled: true,
		PerPage:        10,
	}
	db, err := server.OpenDatabase(cfg, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, repositories.AutoMigrate(db))

	recorder := metrics.New()
	f := &Fixture{
		App:     server.New(server.Deps{DB: db, Config: cfg, Metrics: recorder, Quiet: true}),
		DB:      db,
		Metrics: recorder,
		Outlet:  models.Warehouse{Name: "Outlet Pusat", Address: "Jl. Merdeka 1", Kind: models.KindOutlet},
		Other:   models.Warehouse{Name: "Outlet Timur", Address: "Jl. Timur 7", Kind: models.KindOutlet},
		Product: models.Product{
			Name:    "Beras Premium",
			Details: []models.ProductDetail{{Unit: "karung", Price: 250000}, {Unit: "kg", Price: 15000}},
		},
	}

	warehouses := repositories.NewGORMWarehouseRepository(db)
	require.NoError(t, warehouses.Create(&f.Outlet))
	require.NoError(t, warehouses.Create(&f.Other))
	require.NoError(t, repositories.NewGORMProductRepository(db).Create(&f.Product))

	require.NoError(t, f.Auth.EnsureOwner(OwnerUsername, "owner@toko.test", OwnerPassword))
	ownerActor := services.Actor{Role: models.RoleOwner}
	require.NoError(t, f.Auth.CreateUser(ownerActor, &models.User{
		Username:    OutletUsername,
		Email:       "kasir@toko.test",
		Password:    OutletPassword,
		Role:        models.RoleOutlet,
		WarehouseID: f.Outlet.ID,
	}))
	return f
}

// Token logs username in and returns the bearer token.
func (f *Fixture) Token(t testing.TB, username, password string) string {
	t.Helper()
	token, err := f.Auth.LoginUser(username, password)
	require.NoError(t, err)
	return token
}

// Serve starts the app on a loopback port and returns the API base URL.
func (f *Fixture) Serve(t testing.TB) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	go func() { _ = f.Fiber.Listener(ln) }()
	t.Cleanup(func() { _ = f.Fiber.Shutdown() })
	return "http://" + ln.Addr().String() + "/api/v1"
}
