package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/edital/internal/domain"
	"github.com/alexanderramin/edital/internal/importer"
	"github.com/alexanderramin/edital/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const syllabusFixture = "../importer/testdata/syllabus.json"

func TestSyllabusService_ImportFile(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	syl, err := env.syllabus.ImportFile(ctx, testutil.TestUserID, syllabusFixture)
	require.NoError(t, err)
	assert.Len(t, syl.Topics, 4)

	fetched, err := env.syllabus.GetByID(ctx, syl.ID)
	require.NoError(t, err)
	assert.Equal(t, syl.Name, fetched.Name)
	require.Len(t, fetched.Topics, 4)

	byName := map[string]domain.Topic{}
	for _, topic := range fetched.Topics {
		byName[topic.Name] = topic
	}
	adm := byName["Direito Administrativo"]
	assert.Equal(t, []string{byName["Direito Constitucional"].ID}, adm.Prerequisites)
	assert.Equal(t, "Direito Administrativo", adm.Subject, "subject defaults to the topic name")
	assert.InDelta(t, importer.DefaultEstimatedHours, adm.EstimatedHours, 1e-9)
	assert.Equal(t, domain.DifficultyMedium, byName["Raciocínio Lógico"].Difficulty)
	assert.Equal(t, []string{"Crase", "Concordância"}, byName["Língua Portuguesa"].Subtopics)

	list, err := env.syllabus.List(ctx, testutil.TestUserID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, env.syllabus.Delete(ctx, syl.ID))
	_, err = env.syllabus.GetByID(ctx, syl.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSyllabusService_Import_ReportsAllErrors(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	schema := &importer.SyllabusImport{
		Syllabus: importer.SyllabusHeader{Name: "", ExamDate: "not-a-date"},
		Topics: []importer.TopicImport{
			{Ref: "a", Name: "A", Prerequisites: []string{"b"}},
			{Ref: "b", Name: "B", Prerequisites: []string{"a"}},
		},
	}
	_, err := env.syllabus.Import(ctx, testutil.TestUserID, schema)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	var verr *importer.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.GreaterOrEqual(t, len(verr.Errs), 3, "name, date and cycle are all reported")

	list, err := env.syllabus.List(ctx, testutil.TestUserID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSyllabusService_Import_RequiresUser(t *testing.T) {
	env := setupServices(t)

	schema, err := importer.LoadSyllabusImport(syllabusFixture)
	require.NoError(t, err)
	_, err = env.syllabus.Import(context.Background(), "", schema)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
