package beef

import (
	"testing"

	"github.com/stretchr/testify/assert"

	generror "github.com/Alia5/tmplgen/internal/codegen/error"
)

func TestValidateIdentifier(t *testing.T) {
	tests := []struct {
		id    string
		valid bool
	}{
		{"Foo", true},
		{"_private", true},
		{"Vec3_Add2", true},
		{"", false},
		{"3D", false},
		{"has-dash", false},
		{"has space", false},
		{"dotted.name", false},
		{"größe", false},
		{"class", false},
		{"let", false},
		{"nameof", false},
		{"inline", false},
		{"when", false},
		{"Class", true},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			err := ValidateIdentifier(tt.id)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, generror.ErrInvalidIdentifier)
		})
	}
}

func TestValidateNamespace(t *testing.T) {
	assert.NoError(t, ValidateNamespace("BindingGeneratorHpp"))
	assert.NoError(t, ValidateNamespace("Binding.Generator"))
	assert.ErrorIs(t, ValidateNamespace("Binding..Generator"), generror.ErrInvalidIdentifier)
	assert.ErrorIs(t, ValidateNamespace("Binding.namespace"), generror.ErrInvalidIdentifier)
}

func TestIsKeyword(t *testing.T) {
	assert.True(t, IsKeyword("static"))
	assert.False(t, IsKeyword("Template"))
}
