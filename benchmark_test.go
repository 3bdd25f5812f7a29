package riverkit

import (
	"fmt"
	"testing"
)

func BenchmarkScopeAllows(b *testing.B) {
	ids := make([]string, 100)
	for i := range ids {
		ids[i] = fmt.Sprintf("actor-%d", i)
	}
	scope := Scope{ActorIDs: ids, Exclude: []string{"hidden"}}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		scope.Allows("actor-99")
	}
}

func BenchmarkGenerateSecret(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := generateSecret(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkNotificationContent(b *testing.B) {
	entry := ActivityEntry{
		Action:  ActionSuspendActor,
		Details: ActorDetails{ActorID: "a1", SuspensionReason: "policy breach"}.ToDetails(),
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		notificationContent("Ana", entry)
	}
}
