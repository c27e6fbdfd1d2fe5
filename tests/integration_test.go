package test

import (
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Vinzor11/hrgrid/pkg/database"
	"github.com/Vinzor11/hrgrid/pkg/fieldschema"
	"github.com/Vinzor11/hrgrid/pkg/filter"
	"github.com/Vinzor11/hrgrid/pkg/listing"
	"github.com/Vinzor11/hrgrid/pkg/logger"
	"github.com/Vinzor11/hrgrid/pkg/models"
	"github.com/Vinzor11/hrgrid/pkg/prefs"
	"github.com/Vinzor11/hrgrid/pkg/querysync"
)

// TestListingRoundTrip drives the full stack: the synchronizer building
// query parameters, the HTTP fetcher, the listing handler translating them
// into SQL, and the page flowing back.
func TestListingRoundTrip(t *testing.T) {
	logger.Init(true)

	server := setupIntegrationServer(t)
	backend := prefs.NewMemoryBackend()
	catalog := fieldschema.DefaultCatalog()

	sync := querysync.New(querysync.Config{
		Fetcher:      querysync.NewHTTPFetcher(server.URL),
		Prefs:        prefs.NewStore(backend, "employees"),
		Types:        catalog,
		Debounce:     30 * time.Millisecond,
		ReapplyDelay: 20 * time.Millisecond,
	})
	defer sync.Close()

	sync.Restore()
	sync.Refresh()
	sync.Wait()

	page := sync.Page()
	require.NotNil(t, page)
	assert.Equal(t, int64(3), page.Meta.Total, "deleted employees stay hidden by default")

	t.Run("debounced search", func(t *testing.T) {
		sync.SetSearch("m")
		sync.SetSearch("mok")
		time.Sleep(80 * time.Millisecond)
		sync.Wait()

		page := sync.Page()
		require.NotNil(t, page)
		require.Len(t, page.Data, 1)
		assert.Equal(t, "EMP-0003", page.Data[0]["employee_no"])

		sync.SetSearch("")
		time.Sleep(80 * time.Millisecond)
		sync.Wait()
	})

	t.Run("quick filter with dropdowns", func(t *testing.T) {
		sync.SetStatus("active")
		sync.Wait()

		page := sync.Page()
		require.NotNil(t, page)
		assert.Equal(t, int64(2), page.Meta.Total)
		require.NotNil(t, page.Dropdowns, "an active quick filter requests facet data")
		assert.NotEmpty(t, page.Dropdowns.Departments)

		sync.SetStatus("")
		sync.Wait()
	})

	t.Run("advanced filter apply and remove", func(t *testing.T) {
		c := sync.AddFilter()
		sync.UpdateFilter(c.ID, filter.Patch{
			Field: strptr("hire_date"),
		})
		sync.UpdateFilter(c.ID, filter.Patch{
			Operator: opptr(filter.OpBetween),
			Value:    valptr(filter.RangeValue("2016-01-01", "2018-12-31")),
		})
		sync.Wait()
		assert.Equal(t, 1, sync.ValidFilterCount())

		sync.ApplyFilters()
		sync.Wait()
		page := sync.Page()
		require.NotNil(t, page)
		assert.Equal(t, int64(2), page.Meta.Total)

		// Removing the applied condition re-applies automatically.
		sync.RemoveFilter(c.ID)
		time.Sleep(60 * time.Millisecond)
		sync.Wait()
		page = sync.Page()
		require.NotNil(t, page)
		assert.Equal(t, int64(3), page.Meta.Total)
	})

	t.Run("preferences survive a new session", func(t *testing.T) {
		sync.SetPerPage(2)
		sync.SetShowDeleted(true)
		sync.Wait()

		fresh := querysync.New(querysync.Config{
			Fetcher: querysync.NewHTTPFetcher(server.URL),
			Prefs:   prefs.NewStore(backend, "employees"),
			Types:   catalog,
		})
		defer fresh.Close()

		fresh.Restore()
		fresh.Refresh()
		fresh.Wait()

		st := fresh.State()
		assert.Equal(t, 2, st.PerPage)
		assert.True(t, st.ShowDeleted)

		page := fresh.Page()
		require.NotNil(t, page)
		assert.Equal(t, int64(4), page.Meta.Total)
		assert.Equal(t, 2, page.Meta.PerPage)
		assert.Len(t, page.Data, 2)
	})
}

func setupIntegrationServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "hrgrid_test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.AllModels()...))

	departments := []models.Department{
		{ID: "dep-eng", Name: "Engineering", Code: "ENG"},
		{ID: "dep-hr", Name: "Human Resources", Code: "HR"},
	}
	positions := []models.Position{
		{ID: "pos-se", Name: "Software Engineer", Rank: 3},
		{ID: "pos-hr", Name: "HR Officer", Rank: 2},
	}
	deleted := time.Now().Add(-time.Hour)
	employees := []models.Employee{
		{ID: "e1", EmployeeNo: "EMP-0001", FirstName: "Thandi", Surname: "Nkosi",
			Email: "thandi@example.com", Status: "active", EmployeeType: "permanent",
			HireDate: "2018-02-01", DepartmentID: "dep-eng", PositionID: "pos-se"},
		{ID: "e2", EmployeeNo: "EMP-0002", FirstName: "Pieter", Surname: "van der Merwe",
			Email: "pieter@example.com", Status: "active", EmployeeType: "contract",
			HireDate: "2021-07-15", DepartmentID: "dep-eng", PositionID: "pos-se"},
		{ID: "e3", EmployeeNo: "EMP-0003", FirstName: "Lerato", Surname: "Mokoena",
			Email: "lerato@example.com", Status: "on-leave", EmployeeType: "permanent",
			HireDate: "2016-11-01", DepartmentID: "dep-hr", PositionID: "pos-hr"},
		{ID: "e4", EmployeeNo: "EMP-0004", FirstName: "Sipho", Surname: "Dlamini",
			Email: "sipho@example.com", Status: "inactive", EmployeeType: "intern",
			HireDate: "2023-03-20", DepartmentID: "dep-hr", PositionID: "pos-hr",
			DeletedAt: &deleted},
	}
	require.NoError(t, db.Create(&departments).Error)
	require.NoError(t, db.Create(&positions).Error)
	require.NoError(t, db.Create(&employees).Error)

	handler := listing.NewHandler(database.NewGormAdapter(db), fieldschema.DefaultCatalog())
	r := mux.NewRouter()
	handler.RegisterRoutes(r)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

func strptr(s string) *string                   { return &s }
func opptr(op filter.Operator) *filter.Operator { return &op }
func valptr(v filter.Value) *filter.Value       { return &v }
