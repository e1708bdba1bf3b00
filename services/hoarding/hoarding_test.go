package hoarding

import (
	"context"
	"testing"

	"hoardify/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).([]models.Category)
	return c, args.Error(1)
}

func (m *mockRepo) CreateCategory(ctx context.Context, c *models.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockRepo) DeleteCategory(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepo) GetAll(ctx context.Context) ([]models.Hoarding, error) {
	args := m.Called(ctx)
	h, _ := args.Get(0).([]models.Hoarding)
	return h, args.Error(1)
}

func (m *mockRepo) ListByCategory(ctx context.Context, categoryID string) ([]models.Hoarding, error) {
	args := m.Called(ctx, categoryID)
	h, _ := args.Get(0).([]models.Hoarding)
	return h, args.Error(1)
}

func (m *mockRepo) FindByID(ctx context.Context, id string) (*models.Hoarding, error) {
	args := m.Called(ctx, id)
	h, _ := args.Get(0).(*models.Hoarding)
	return h, args.Error(1)
}

func (m *mockRepo) FindByIDs(ctx context.Context, ids []string) (map[string]*models.Hoarding, error) {
	args := m.Called(ctx, ids)
	found, _ := args.Get(0).(map[string]*models.Hoarding)
	return found, args.Error(1)
}

func (m *mockRepo) Create(ctx context.Context, h *models.Hoarding) error {
	return m.Called(ctx, h).Error(0)
}

func (m *mockRepo) Update(ctx context.Context, h *models.Hoarding) error {
	return m.Called(ctx, h).Error(0)
}

func (m *mockRepo) UpdateFields(ctx context.Context, categoryID, id string, fields map[string]interface{}) error {
	return m.Called(ctx, categoryID, id, fields).Error(0)
}

func (m *mockRepo) Delete(ctx context.Context, categoryID, id string) error {
	return m.Called(ctx, categoryID, id).Error(0)
}

func inventory() []models.Hoarding {
	return []models.Hoarding{
		{ID: "h2", CategoryID: "Highway", Title: "NH48 Gantry", City: "Pune", Available: false},
		{ID: "h1", CategoryID: "Downtown", Title: "MG Road Unipole", City: "Bengaluru", Available: true, Tags: []string{"lit"}},
		{ID: "h3", CategoryID: "Downtown", Title: "Brigade Road Wall", City: "Bengaluru", Available: true},
	}
}

func TestListHoardings(t *testing.T) {
	repo := new(mockRepo)
	repo.On("GetAll", mock.Anything).Return(inventory(), nil)
	repo.On("ListByCategory", mock.Anything, "Highway").Return(inventory()[:1], nil)
	svc := &DefaultHoardingService{Repo: repo}

	all, err := svc.ListHoardings(context.Background(), Query{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"h3", "h1", "h2"}, []string{all[0].ID, all[1].ID, all[2].ID})

	yes := true
	avail, err := svc.ListHoardings(context.Background(), Query{Available: &yes, Search: "LIT"})
	require.NoError(t, err)
	require.Len(t, avail, 1)
	assert.Equal(t, "h1", avail[0].ID)

	hw, err := svc.ListHoardings(context.Background(), Query{CategoryID: "Highway"})
	require.NoError(t, err)
	assert.Len(t, hw, 1)
}

func TestCreateHoarding(t *testing.T) {
	repo := new(mockRepo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(h *models.Hoarding) bool {
		return h.CategoryID == "Downtown" && h.Available && h.Title == "MG Road Unipole" && len(h.Tags) == 1
	})).Return(nil).Once()
	svc := &DefaultHoardingService{Repo: repo}

	h, err := svc.CreateHoarding(context.Background(), "admin", "Downtown", models.HoardingInput{
		Title: " MG Road Unipole ", Location: "MG Road", Price: 45000, Tags: []string{" lit ", ""},
	})
	require.NoError(t, err)
	assert.Equal(t, "Downtown", h.CategoryID)
	repo.AssertExpectations(t)

	_, err = svc.CreateHoarding(context.Background(), "admin", "Downtown", models.HoardingInput{Price: -1})
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "title")
	assert.Contains(t, verr.Fields, "price")
}

func TestUpdateHoarding_CategoryMismatch(t *testing.T) {
	repo := new(mockRepo)
	repo.On("FindByID", mock.Anything, "h1").Return(&inventory()[1], nil)
	svc := &DefaultHoardingService{Repo: repo}

	_, err := svc.UpdateHoarding(context.Background(), "admin", "Highway", "h1", models.HoardingInput{Title: "x1", Location: "y"})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUpdateHoarding_KeepsViews(t *testing.T) {
	existing := models.Hoarding{ID: "h1", CategoryID: "Downtown", Title: "Old", Views: 120, Available: true}
	repo := new(mockRepo)
	repo.On("FindByID", mock.Anything, "h1").Return(&existing, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(h *models.Hoarding) bool {
		return h.Views == 120 && h.Available && h.Title == "New"
	})).Return(nil)
	svc := &DefaultHoardingService{Repo: repo}

	h, err := svc.UpdateHoarding(context.Background(), "admin", "Downtown", "h1", models.HoardingInput{Title: "New", Location: "MG Road"})
	require.NoError(t, err)
	assert.Equal(t, 120, h.Views)
}

func TestCategories(t *testing.T) {
	repo := new(mockRepo)
	repo.On("CreateCategory", mock.Anything, mock.Anything).Return(nil)
	repo.On("DeleteCategory", mock.Anything, "Busy").
		Return(models.NewValidationError(map[string]string{"category": "category still contains hoardings"}))
	svc := &DefaultHoardingService{Repo: repo}

	c, err := svc.CreateCategory(context.Background(), "admin", models.CategoryInput{Name: " Airport "})
	require.NoError(t, err)
	assert.Equal(t, "Airport", c.ID)

	_, err = svc.CreateCategory(context.Background(), "admin", models.CategoryInput{Name: "a/b"})
	assert.ErrorIs(t, err, models.ErrValidation)

	assert.ErrorIs(t, svc.DeleteCategory(context.Background(), "admin", "Busy"), models.ErrValidation)
}

func TestSetAvailability(t *testing.T) {
	repo := new(mockRepo)
	repo.On("UpdateFields", mock.Anything, "Downtown", "h1", map[string]interface{}{"available": false}).Return(nil)
	repo.On("UpdateFields", mock.Anything, "Downtown", "h9", mock.Anything).Return(models.ErrNotFound)
	svc := &DefaultHoardingService{Repo: repo}

	assert.NoError(t, svc.SetAvailability(context.Background(), "admin", "Downtown", "h1", false))
	assert.ErrorIs(t, svc.SetAvailability(context.Background(), "admin", "Downtown", "h9", true), models.ErrNotFound)
}
