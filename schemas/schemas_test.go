package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/expert-finder/internal/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	schemaFiles := []string{
		"profile.schema.json",
	}

	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			schemaPath := filepath.Join(".", schemaFile)
			data, err := os.ReadFile(schemaPath)
			require.NoError(t, err, "should be able to read schema file")

			var v interface{}
			err = json.Unmarshal(data, &v)
			assert.NoError(t, err, "schema file should be valid JSON: %s", schemaFile)
		})
	}
}

func TestProfileSchema_AcceptsValidExport(t *testing.T) {
	raw := `{
		"urn_id": "urn-123",
		"fetch_timestamp": "2025-01-15T10:00:00Z",
		"profile_data": {
			"firstName": "Grace",
			"lastName": "Hopper",
			"headline": "Rear Admiral, Computer Scientist",
			"experience": [
				{"title": "Senior Mathematician", "companyName": "Eckert-Mauchly"}
			],
			"education": [
				{"schoolName": "Yale University", "degreeName": "PhD", "fieldOfStudy": "Mathematics"}
			],
			"skills": [{"name": "Compilers"}]
		}
	}`

	schemaData, err := os.ReadFile("profile.schema.json")
	require.NoError(t, err)

	assert.NoError(t, schemas.ValidateJSONString(string(schemaData), raw))
}

func TestProfileSchema_RejectsMissingURN(t *testing.T) {
	raw := `{"profile_data": {}}`

	schemaData, err := os.ReadFile("profile.schema.json")
	require.NoError(t, err)

	err = schemas.ValidateJSONString(string(schemaData), raw)
	require.Error(t, err)

	validationErr, ok := err.(*schemas.ValidationError)
	require.True(t, ok, "expected ValidationError, got %T", err)
	assert.NotEmpty(t, validationErr.Errors)
}

func TestProfileSchema_RejectsEmptyURN(t *testing.T) {
	raw := `{"urn_id": "", "profile_data": {}}`

	schemaData, err := os.ReadFile("profile.schema.json")
	require.NoError(t, err)

	assert.Error(t, schemas.ValidateJSONString(string(schemaData), raw))
}
