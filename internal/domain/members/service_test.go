package members

import (
	"context"
	"errors"
	"testing"
)

type fakeMemberRepo struct {
	members        []Member
	nextID         int64
	hasAssignments map[int64]bool
	hasPayments    map[int64]bool
}

func (f *fakeMemberRepo) Create(ctx context.Context, member *Member) error {
	f.nextID++
	member.ID = f.nextID
	f.members = append(f.members, *member)
	return nil
}

func (f *fakeMemberRepo) Update(ctx context.Context, member *Member) error {
	for i := range f.members {
		if f.members[i].ID == member.ID {
			f.members[i] = *member
			return nil
		}
	}
	return ErrMemberNotFound
}

func (f *fakeMemberRepo) GetByID(ctx context.Context, memberID int64) (*Member, error) {
	for _, member := range f.members {
		if member.ID == memberID {
			copied := member
			return &copied, nil
		}
	}
	return nil, ErrMemberNotFound
}

func (f *fakeMemberRepo) List(ctx context.Context, filter ListFilter) ([]Member, int64, error) {
	result := make([]Member, len(f.members))
	copy(result, f.members)
	return result, int64(len(result)), nil
}

func (f *fakeMemberRepo) Delete(ctx context.Context, memberID int64) (bool, error) {
	for i, member := range f.members {
		if member.ID == memberID {
			f.members = append(f.members[:i], f.members[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeMemberRepo) HasAssignments(ctx context.Context, memberID int64) (bool, error) {
	return f.hasAssignments[memberID], nil
}

func (f *fakeMemberRepo) HasPayments(ctx context.Context, memberID int64) (bool, error) {
	return f.hasPayments[memberID], nil
}

func TestCreateTrimsFields(t *testing.T) {
	svc := NewService(&fakeMemberRepo{})

	member, err := svc.Create(context.Background(), CreateMemberInput{
		FirstName: "  Anita ",
		LastName:  " Blokland ",
		Email:     " anita@example.com ",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if member.FirstName != "Anita" || member.LastName != "Blokland" {
		t.Fatalf("expected trimmed names, got %q %q", member.FirstName, member.LastName)
	}
	if member.FullName() != "Anita Blokland" {
		t.Fatalf("unexpected full name %q", member.FullName())
	}
}

func TestCreateRequiresNames(t *testing.T) {
	svc := NewService(&fakeMemberRepo{})

	if _, err := svc.Create(context.Background(), CreateMemberInput{LastName: "Blokland"}); err == nil {
		t.Fatal("expected error for missing first name")
	}
	if _, err := svc.Create(context.Background(), CreateMemberInput{FirstName: "Anita"}); err == nil {
		t.Fatal("expected error for missing last name")
	}
}

func TestDeleteBlockedWhileAssigned(t *testing.T) {
	repo := &fakeMemberRepo{hasAssignments: map[int64]bool{1: true}}
	svc := NewService(repo)

	if _, err := svc.Create(context.Background(), CreateMemberInput{FirstName: "Anita", LastName: "Blokland"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(context.Background(), 1); !errors.Is(err, ErrMemberInUse) {
		t.Fatalf("expected ErrMemberInUse, got %v", err)
	}
}

func TestDeleteBlockedWhilePaymentsExist(t *testing.T) {
	repo := &fakeMemberRepo{hasPayments: map[int64]bool{1: true}}
	svc := NewService(repo)

	if _, err := svc.Create(context.Background(), CreateMemberInput{FirstName: "Anita", LastName: "Blokland"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(context.Background(), 1); !errors.Is(err, ErrMemberInUse) {
		t.Fatalf("expected ErrMemberInUse, got %v", err)
	}
}

func TestDeleteMissingMember(t *testing.T) {
	svc := NewService(&fakeMemberRepo{})

	if err := svc.Delete(context.Background(), 42); !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound, got %v", err)
	}
}
