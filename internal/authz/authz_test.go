package authz_test

import (
	"testing"

	"github.com/jobdeck/jobdeck/internal/authz"
	"github.com/jobdeck/jobdeck/pkg/apperr"
	"github.com/jobdeck/jobdeck/pkg/models"
)

func TestCheckPermission(t *testing.T) {
	privileged := []models.Role{models.RoleCompany, models.RoleAdmin}

	tests := []struct {
		name    string
		caller  models.Caller
		ownerID int64
		wantErr bool
	}{
		{
			name:    "OwnerIndividual",
			caller:  models.Caller{ID: 1, Role: models.RoleIndividual},
			ownerID: 1,
		},
		{
			name:    "NonOwnerIndividual",
			caller:  models.Caller{ID: 1, Role: models.RoleIndividual},
			ownerID: 2,
			wantErr: true,
		},
		{
			name:    "CompanyBypassesOwnership",
			caller:  models.Caller{ID: 1, Role: models.RoleCompany},
			ownerID: 2,
		},
		{
			name:    "AdminBypassesOwnership",
			caller:  models.Caller{ID: 1, Role: models.RoleAdmin},
			ownerID: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := authz.CheckPermission(tt.caller, tt.ownerID, privileged...)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected Unauthorized, got nil")
				}
				if apperr.KindOf(err) != apperr.Unauthorized {
					t.Fatalf("expected Unauthorized kind, got %v", apperr.KindOf(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("expected permission granted, got %v", err)
			}
		})
	}
}

func TestCheckPermission_NoPrivilegedSet(t *testing.T) {
	// with no privileged roles only ownership grants access
	if err := authz.CheckPermission(models.Caller{ID: 5, Role: models.RoleAdmin}, 6); err == nil {
		t.Fatalf("expected Unauthorized when role is not in the privileged set")
	}
	if err := authz.CheckPermission(models.Caller{ID: 6, Role: models.RoleAdmin}, 6); err != nil {
		t.Fatalf("owner should always pass: %v", err)
	}
}

func TestRequireRole(t *testing.T) {
	if err := authz.RequireRole(models.Caller{ID: 1, Role: models.RoleIndividual}, models.RoleCompany, models.RoleAdmin); err == nil {
		t.Fatalf("expected individual to be rejected")
	}
	if err := authz.RequireRole(models.Caller{ID: 1, Role: models.RoleCompany}, models.RoleCompany, models.RoleAdmin); err != nil {
		t.Fatalf("expected company to pass: %v", err)
	}
}
