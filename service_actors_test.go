package riverkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCreateActorOperation tests president-only registration
func TestCreateActorOperation(t *testing.T) {
	helper := NewTestDataHelper(t)
	if helper == nil {
		return
	}

	service := helper.GetService()
	ctx := helper.GetContext()
	president := helper.CreatePresident("Registrar President")
	supervisor := helper.CreateSupervisor("Registrar Supervisor")

	t.Run("President registers an active actor", func(t *testing.T) {
		created, err := service.CreateActor(ctx, president, ActorInput{
			Name:  "New Swimmer",
			Email: uniqueEmail("new-swimmer"),
			Role:  RoleSwimmer,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.True(t, created.Active)
		assert.Equal(t, RoleSwimmer, created.Role)

		entries := helper.AuditEntriesFor(president.ID)
		require.NotEmpty(t, entries)
		assert.Equal(t, ActionCreateActor, entries[0].Action)
	})

	t.Run("Supervisor cannot register actors", func(t *testing.T) {
		_, err := service.CreateActor(ctx, supervisor, ActorInput{
			Name:  "Sneaky",
			Email: uniqueEmail("sneaky"),
			Role:  RoleSwimmer,
		})
		assert.True(t, IsAccessDenied(err))
	})

	t.Run("Unknown role rejected", func(t *testing.T) {
		_, err := service.CreateActor(ctx, president, ActorInput{
			Name:  "Admin",
			Email: uniqueEmail("admin"),
			Role:  Role("admin"),
		})
		assert.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("Duplicate email rejected", func(t *testing.T) {
		email := uniqueEmail("taken")
		_, err := service.CreateActor(ctx, president, ActorInput{Name: "First", Email: email, Role: RoleSwimmer})
		require.NoError(t, err)

		_, err = service.CreateActor(ctx, president, ActorInput{Name: "Second", Email: email, Role: RoleSwimmer})
		assert.ErrorIs(t, err, ErrDuplicateName)
	})
}

// TestSetActorRole tests explicit role changes
func TestSetActorRole(t *testing.T) {
	helper := NewTestDataHelper(t)
	if helper == nil {
		return
	}

	service := helper.GetService()
	ctx := helper.GetContext()
	president := helper.CreatePresident("Role President")
	supervisor := helper.CreateSupervisor("Role Supervisor")
	swimmer := helper.CreateSwimmer("Role Swimmer")

	t.Run("President promotes a swimmer", func(t *testing.T) {
		err := service.SetActorRole(ctx, president, swimmer.ID, RoleSupervisor)
		require.NoError(t, err)

		promoted, err := service.getActor(ctx, swimmer.ID)
		require.NoError(t, err)
		assert.Equal(t, RoleSupervisor, promoted.Role)
	})

	t.Run("Supervisor cannot change roles", func(t *testing.T) {
		err := service.SetActorRole(ctx, supervisor, swimmer.ID, RolePresident)
		assert.True(t, IsAccessDenied(err))
	})

	t.Run("Unknown role rejected", func(t *testing.T) {
		err := service.SetActorRole(ctx, president, swimmer.ID, Role("root"))
		assert.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("Unknown target", func(t *testing.T) {
		err := service.SetActorRole(ctx, president, "00000000-0000-0000-0000-000000000000", RoleSwimmer)
		assert.ErrorIs(t, err, ErrActorNotFound)
	})
}

// TestSuspension tests suspend and reactivate
func TestSuspension(t *testing.T) {
	helper := NewTestDataHelper(t)
	if helper == nil {
		return
	}

	service := helper.GetService()
	ctx := helper.GetContext()
	president := helper.CreatePresident("Suspend President")
	supervisor := helper.CreateSupervisor("Suspend Supervisor")
	swimmer := helper.CreateSwimmer("Suspend Swimmer")

	t.Run("President suspends with a reason", func(t *testing.T) {
		err := service.SuspendActor(ctx, president, swimmer.ID, "repeated no-shows")
		require.NoError(t, err)

		suspended, err := service.getActor(ctx, swimmer.ID)
		require.NoError(t, err)
		assert.False(t, suspended.Active)

		entries := helper.AuditEntriesFor(president.ID)
		require.NotEmpty(t, entries)
		assert.Equal(t, ActionSuspendActor, entries[0].Action)
		assert.Equal(t, "repeated no-shows", ActorDetailsFrom(entries[0].Details).SuspensionReason)
	})

	t.Run("Suspension notifies with the reason", func(t *testing.T) {
		notifications := helper.NotificationsFor(supervisor)
		require.NotEmpty(t, notifications)
		assert.Equal(t, "Actor Suspended", notifications[0].Title)
		assert.Contains(t, notifications[0].Message, "repeated no-shows")
	})

	t.Run("President reactivates", func(t *testing.T) {
		err := service.ReactivateActor(ctx, president, swimmer.ID)
		require.NoError(t, err)

		reactivated, err := service.getActor(ctx, swimmer.ID)
		require.NoError(t, err)
		assert.True(t, reactivated.Active)
	})

	t.Run("Supervisor cannot suspend", func(t *testing.T) {
		err := service.SuspendActor(ctx, supervisor, swimmer.ID, "because")
		assert.True(t, IsAccessDenied(err))
	})

	t.Run("Self-suspension rejected", func(t *testing.T) {
		err := service.SuspendActor(ctx, president, president.ID, "oops")
		assert.True(t, IsAccessDenied(err))
	})

	t.Run("Hidden actor cannot be suspended", func(t *testing.T) {
		hidden := helper.CreatePresident("Suspend Hidden")
		service.hiddenActorID = hidden.ID
		defer func() { service.hiddenActorID = "" }()

		err := service.SuspendActor(ctx, president, hidden.ID, "invisible")
		assert.True(t, IsAccessDenied(err))
	})
}
