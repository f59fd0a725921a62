package gateway

import (
	"errors"

	"github.com/hsumonkyi-hmk/ayar-farm-sub000/tools/errs"
	"github.com/hsumonkyi-hmk/ayar-farm-sub000/tools/security"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleStandard Role = "standard"
)

// ParseRole maps a raw role claim onto the closed role set. Anything
// unrecognized degrades to standard.
func ParseRole(s string) Role {
	if s == string(RoleAdmin) {
		return RoleAdmin
	}
	return RoleStandard
}

// Identity is the negotiated identity of a connection. Resolved once
// during the handshake and immutable afterwards; a role change needs a
// new connection.
type Identity struct {
	UserID string `json:"user_id"`
	Role   Role   `json:"role"`
}

func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

// Credential is the handshake payload: a signed session token, or a
// bare user_id/role pair on the lower-trust claimed path.
type Credential struct {
	Token  string
	UserID string
	Role   string
}

func (c Credential) Empty() bool { return c.Token == "" && c.UserID == "" }

// Resolver turns a handshake credential into an Identity.
type Resolver struct {
	opts         security.Options
	allowClaimed bool
}

func NewResolver(opts security.Options, allowClaimed bool) *Resolver {
	return &Resolver{opts: opts, allowClaimed: allowClaimed}
}

// Resolve verifies the token path first. The claimed path is only
// consulted when no token was supplied and the deployment allows it.
// Failures are tagged so the lifecycle controller can pick the right
// outbound event.
func (r *Resolver) Resolve(cred Credential) (Identity, error) {
	if cred.Token != "" {
		claims, err := security.Verify(r.opts, cred.Token)
		if err != nil {
			if errors.Is(err, security.ErrExpired) {
				return Identity{}, errs.ErrTokenExpired.WithDetail(err.Error())
			}
			return Identity{}, errs.ErrInvalidToken.WithDetail(err.Error())
		}
		return Identity{UserID: claims.Subject, Role: ParseRole(claims.Role)}, nil
	}

	if cred.UserID != "" && r.allowClaimed {
		return Identity{UserID: cred.UserID, Role: ParseRole(cred.Role)}, nil
	}

	return Identity{}, errs.ErrNoCredential
}
