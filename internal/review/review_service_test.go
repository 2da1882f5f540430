package review_test

import (
	"context"
	"estatehub/backend/internal/apperr"
	"estatehub/backend/internal/models"
	"estatehub/backend/internal/pagination"
	"estatehub/backend/internal/review"
	"estatehub/backend/internal/storage"
	"estatehub/backend/internal/storage/storagetest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreate(t *testing.T) {
	st := new(storagetest.MockStorage)
	svc := review.NewService(st)
	ctx := context.Background()
	st.On("GetPropertyByID", ctx, "prop-1").Return(&models.Property{ID: "prop-1", OwnerID: "owner-1"}, nil)
	st.On("CreateReview", ctx, mock.MatchedBy(func(r *models.Review) bool {
		return r.Rating == 4 && r.ReviewerID == "guest-1" && r.Comment == "cozy"
	})).Return(nil).Once()
	st.On("CreateReview", ctx, mock.Anything).Return(apperr.ErrConflict).Once()

	_, err := svc.Create(ctx, "guest-1", "prop-1", 4, " cozy ")
	require.NoError(t, err)

	_, err = svc.Create(ctx, "guest-1", "prop-1", 4, "again")
	assert.ErrorIs(t, err, apperr.ErrConflict)

	_, err = svc.Create(ctx, "owner-1", "prop-1", 5, "")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	for _, rating := range []int{0, 6} {
		_, err = svc.Create(ctx, "guest-1", "prop-1", rating, "")
		assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	}
}

func TestListForProperty(t *testing.T) {
	st := new(storagetest.MockStorage)
	svc := review.NewService(st)
	ctx := context.Background()
	page := pagination.New(1, 10)
	st.On("GetPropertyByID", ctx, "prop-1").Return(&models.Property{ID: "prop-1"}, nil)
	st.On("GetPropertyByID", ctx, "nope").Return(nil, apperr.ErrNotFound)
	st.On("ListReviews", ctx, "prop-1", page).Return(pagination.Result[models.Review]{Items: []models.Review{{Rating: 5}, {Rating: 4}}, Total: 2}, nil)
	st.On("GetRatingSummary", ctx, "prop-1").Return(storage.RatingSummary{Average: 4.5, Count: 2}, nil)

	res, err := svc.ListForProperty(ctx, "prop-1", page)
	require.NoError(t, err)
	assert.Len(t, res.Items, 2)
	assert.Equal(t, 4.5, res.Rating.Average)

	_, err = svc.ListForProperty(ctx, "nope", page)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
