package validation

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Name     string `json:"name" binding:"required" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,pwd"`
	OwnerID  string `json:"ownerId" validate:"omitempty,objectid"`
	Budget   struct {
		Min float64 `json:"min" validate:"gte=0"`
	} `json:"budget"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	Configure(v)
	return v
}

func TestToDetailsUsesJSONNames(t *testing.T) {
	in := signup{Email: "nope", Password: "123", OwnerID: "xyz"}
	in.Budget.Min = -1

	err := newValidator().Struct(in)
	require.Error(t, err)

	d := ToDetails(err)
	assert.Equal(t, "is required", d["name"])
	assert.Equal(t, "must be a valid email", d["email"])
	assert.Equal(t, "must be at least 6 characters long", d["password"])
	assert.Equal(t, "must be a valid id", d["ownerId"])
	assert.Equal(t, "must be greater than or equal to 0", d["budget.min"])
}

func TestToDetailsPayloadErrors(t *testing.T) {
	var v signup
	err := json.Unmarshal([]byte(`{"name":`), &v)
	require.Error(t, err)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))

	err = json.Unmarshal([]byte(`{"name": 5}`), &v)
	require.Error(t, err)
	assert.Equal(t, "must be a string", ToDetails(err)["name"])

	assert.Nil(t, ToDetails(nil))
}
