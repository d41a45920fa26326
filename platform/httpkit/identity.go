// Package httpkit provides HTTP utilities including identity abstraction.
package httpkit

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Identity represents the authenticated operator's identity as asserted by
// the external auth collaborator. Handlers read tenant and operator from
// here, never from the request payload.
type Identity interface {
	// OperatorID returns the authenticated operator's ID.
	OperatorID() uuid.UUID
	// TenantID returns the tenant the operator belongs to.
	TenantID() uuid.UUID
	// Roles returns the operator's assigned roles.
	Roles() []string
	// HasRole checks if the operator has a specific role.
	HasRole(role string) bool
	// IsAuthenticated returns true when both operator and tenant are known.
	IsAuthenticated() bool
}

type identity struct {
	operatorID    uuid.UUID
	tenantID      uuid.UUID
	roles         []string
	authenticated bool
}

func (i *identity) OperatorID() uuid.UUID {
	return i.operatorID
}

func (i *identity) TenantID() uuid.UUID {
	return i.tenantID
}

func (i *identity) Roles() []string {
	return i.roles
}

func (i *identity) HasRole(role string) bool {
	for _, r := range i.roles {
		if r == role {
			return true
		}
	}
	return false
}

func (i *identity) IsAuthenticated() bool {
	return i.authenticated
}

// GetIdentity extracts the Identity from a Gin context.
// Returns an unauthenticated identity if operator or tenant info is missing.
func GetIdentity(c *gin.Context) Identity {
	operatorID, operatorOK := c.Get(ContextOperatorIDKey)
	tenantID, tenantOK := c.Get(ContextTenantIDKey)
	roles, rolesOK := c.Get(ContextRolesKey)

	if !operatorOK || !tenantOK {
		return &identity{authenticated: false}
	}

	oid, ok := operatorID.(uuid.UUID)
	if !ok {
		return &identity{authenticated: false}
	}

	tid, ok := tenantID.(uuid.UUID)
	if !ok {
		return &identity{authenticated: false}
	}

	var roleList []string
	if rolesOK {
		roleList, _ = roles.([]string)
	}

	return &identity{
		operatorID:    oid,
		tenantID:      tid,
		roles:         roleList,
		authenticated: true,
	}
}

// MustGetIdentity extracts the Identity from a Gin context.
// If the operator is not authenticated, it aborts with 401 Unauthorized and returns nil.
func MustGetIdentity(c *gin.Context) Identity {
	id := GetIdentity(c)
	if !id.IsAuthenticated() {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil
	}
	return id
}
