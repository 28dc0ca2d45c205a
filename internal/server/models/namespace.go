package models

import (
	"fmt"

	"github.com/dmitrijs2005/gophdrop/internal/common"
)

// Visibility selects which namespace an upload lands in.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// ParseVisibility converts a client-supplied value. Matching is exact: only
// the literal "public" selects the public namespace. An empty value means
// private. Anything else is rejected when strict is set, and treated as
// private otherwise.
func ParseVisibility(raw string, strict bool) (Visibility, error) {
	switch v := Visibility(raw); v {
	case VisibilityPublic, VisibilityPrivate:
		return v, nil
	case "":
		return VisibilityPrivate, nil
	default:
		if strict {
			return "", fmt.Errorf("%w: %q", common.ErrorInvalidVisibility, raw)
		}
		return VisibilityPrivate, nil
	}
}

// Namespace is either the shared public area or one user's private area.
type Namespace struct {
	visibility Visibility
	username   string
}

// PublicNamespace returns the shared namespace.
func PublicNamespace() Namespace {
	return Namespace{visibility: VisibilityPublic}
}

// PrivateNamespace returns the namespace owned by username.
func PrivateNamespace(username string) Namespace {
	return Namespace{visibility: VisibilityPrivate, username: username}
}

// NamespaceFor maps an upload visibility to its target namespace.
func NamespaceFor(v Visibility, caller string) Namespace {
	if v == VisibilityPublic {
		return PublicNamespace()
	}
	return PrivateNamespace(caller)
}

func (n Namespace) IsPublic() bool { return n.visibility == VisibilityPublic }

func (n Namespace) Visibility() Visibility { return n.visibility }

// Owner is "Public" for the public namespace and the username otherwise.
func (n Namespace) Owner() string {
	if n.IsPublic() {
		return common.PublicOwner
	}
	return n.username
}

// Key is the storage key of the namespace. Private keys are prefixed so a
// user named "public" cannot alias the shared area.
func (n Namespace) Key() string {
	if n.IsPublic() {
		return "public"
	}
	return "private/" + n.username
}

func (n Namespace) String() string { return n.Key() }
