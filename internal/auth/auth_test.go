package auth

import (
	"context"
	"errors"
	"testing"
)

type fakeRoleSource struct {
	roles map[string]map[string]bool
	err   error
}

func (f *fakeRoleSource) HasRole(ctx context.Context, userID, role string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.roles[userID][role], nil
}

func TestHas(t *testing.T) {
	src := &fakeRoleSource{roles: map[string]map[string]bool{
		"alice": {"editor": true},
	}}
	ctx := context.Background()

	ok, err := Has(ctx, src, "alice", CapabilityEditor)
	if err != nil || !ok {
		t.Fatalf("Has(alice, editor) = %v, %v; want true", ok, err)
	}

	ok, err = Has(ctx, src, "bob", CapabilityEditor)
	if err != nil || ok {
		t.Fatalf("Has(bob, editor) = %v, %v; want false", ok, err)
	}

	// Empty identities never hold capabilities and skip the source entirely.
	ok, err = Has(ctx, &fakeRoleSource{err: errors.New("should not be called")}, "", CapabilityEditor)
	if err != nil || ok {
		t.Fatalf("Has(empty) = %v, %v; want false, nil", ok, err)
	}
}

func TestHasPropagatesErrors(t *testing.T) {
	wantErr := errors.New("role lookup failed")
	src := &fakeRoleSource{err: wantErr}

	_, err := Has(context.Background(), src, "alice", CapabilityEditor)
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
}
