package services

import (
	"context"
	"testing"

	"radarboard/internal/dto"
	apperrors "radarboard/internal/errors"
	"radarboard/internal/models"
	"radarboard/internal/realtime"
	"radarboard/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnnotationService(t *testing.T, pub realtime.Publisher) AnnotationService {
	t.Helper()
	repo := repositories.NewAnnotationRepository(serviceDB(t))
	return NewAnnotationService(repo, realtime.NewHub[models.Annotation](), pub, nopLogger())
}

func TestAnnotationService_CreateDefaultsToGeral(t *testing.T) {
	svc := newAnnotationService(t, realtime.NewNoopPublisher())

	ann, err := svc.Create(context.Background(), ccoViewer(), dto.CreateAnnotationRequest{
		Title:   "parada programada",
		Content: "moega 01 em manutenção",
	})
	require.NoError(t, err)
	assert.Equal(t, models.AnnotationGeral, ann.Type)
	assert.Equal(t, "cco1", ann.CreatedBy)
}

func TestAnnotationService_CreateRejectsUnknownType(t *testing.T) {
	svc := newAnnotationService(t, realtime.NewNoopPublisher())

	_, err := svc.Create(context.Background(), ccoViewer(), dto.CreateAnnotationRequest{
		Title:   "x",
		Content: "y",
		Type:    "inventado",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestAnnotationService_SharedChannelExcludesDeleted(t *testing.T) {
	pub := &capturePublisher{}
	svc := newAnnotationService(t, pub)
	ctx := context.Background()

	ann, err := svc.Create(ctx, ccoViewer(), dto.CreateAnnotationRequest{
		Title:   "link turno",
		Content: "planilha",
		Type:    string(models.AnnotationLink),
	})
	require.NoError(t, err)

	require.NotEmpty(t, pub.annotations)
	require.Len(t, pub.annotations[len(pub.annotations)-1], 1)

	require.NoError(t, svc.Delete(ctx, balancaViewer(), ann.ID))

	last := pub.annotations[len(pub.annotations)-1]
	assert.Empty(t, last)

	// The row itself survives the delete and stays readable by id.
	kept, err := svc.Get(ctx, ann.ID)
	require.NoError(t, err)
	assert.True(t, kept.Deleted)
}
