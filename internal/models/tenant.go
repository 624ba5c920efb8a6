package models

// TenantResponse is a tenant label drawn from existing containers. Tenants are
// free-text owner labels, not a separate entity, so the name doubles as id.
type TenantResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
