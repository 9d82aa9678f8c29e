package validation

import (
	"testing"

	"campusshelter/model"

	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	v := New()

	require.Error(t, v.Validate(model.LoginReq{Email: "not-an-email", Password: "x"}))
	require.Error(t, v.Validate(model.LoginReq{Email: "user@example.com"}))
	require.NoError(t, v.Validate(model.LoginReq{Email: "user@example.com", Password: "secret"}))

	require.Error(t, v.Validate(model.RegisterReq{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "secret1",
		Role:     model.RoleAdmin,
	}))
}
