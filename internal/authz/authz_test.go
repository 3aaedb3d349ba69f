package authz

import "testing"

func TestRoleSetAllowed(t *testing.T) {
	p := NewRoleSet("111", "222")
	if !p.Allowed([]string{"999", "222"}) {
		t.Fatalf("expected actor with matching role to be allowed")
	}
	if p.Allowed([]string{"333"}) {
		t.Fatalf("expected actor without matching role to be denied")
	}
	if p.Allowed(nil) {
		t.Fatalf("expected actor with no roles to be denied")
	}
}

func TestEmptyRoleSetDeniesEveryone(t *testing.T) {
	p := NewRoleSet()
	if p.Allowed([]string{"111"}) {
		t.Fatalf("empty role set must deny")
	}
	p = NewRoleSet("")
	if p.Allowed([]string{""}) {
		t.Fatalf("blank role IDs must not grant access")
	}
}

func TestAllowAll(t *testing.T) {
	if !(AllowAll{}).Allowed(nil) {
		t.Fatalf("AllowAll must allow")
	}
}
