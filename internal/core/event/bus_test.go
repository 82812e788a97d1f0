package event

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventsArriveNextTick(t *testing.T) {
	b := NewBus()
	var got []ActorKilled
	Subscribe(b, func(e ActorKilled) { got = append(got, e) })

	Emit(b, ActorKilled{Name: "goblin"})
	b.DispatchAll()
	assert.Empty(t, got, "not visible before the swap")

	b.SwapBuffers()
	b.DispatchAll()
	assert.Len(t, got, 1)
	assert.Equal(t, "goblin", got[0].Name)

	b.SwapBuffers()
	b.DispatchAll()
	assert.Len(t, got, 1, "delivered once")
}

func TestHandlersOnlySeeTheirType(t *testing.T) {
	b := NewBus()
	kills, visits := 0, 0
	Subscribe(b, func(ActorKilled) { kills++ })
	Subscribe(b, func(LocationVisited) { visits++ })

	Emit(b, LocationVisited{Player: "Ann"})
	Emit(b, LocationVisited{Player: "Ann"})
	Emit(b, ActorKilled{})
	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, 1, kills)
	assert.Equal(t, 2, visits)
}

func TestDispatchKeepsEmissionOrderAcrossTypes(t *testing.T) {
	b := NewBus()
	var got []string
	Subscribe(b, func(e PlayerJoined) { got = append(got, "join "+e.Player) })
	Subscribe(b, func(e LocationVisited) { got = append(got, "visit "+e.Player) })
	Subscribe(b, func(e PlayerLeft) { got = append(got, "leave "+e.Player) })

	Emit(b, PlayerJoined{Player: "Ann"})
	Emit(b, LocationVisited{Player: "Ann"})
	Emit(b, PlayerJoined{Player: "Bob"})
	Emit(b, PlayerLeft{Player: "Ann"})
	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, []string{"join Ann", "visit Ann", "join Bob", "leave Ann"}, got)
}

func TestConcurrentEmit(t *testing.T) {
	b := NewBus()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				Emit(b, PossibleDelivery{Item: "apple"})
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 800, b.Pending())

	n := 0
	Subscribe(b, func(PossibleDelivery) { n++ })
	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, 800, n)
	assert.Zero(t, b.Pending())
}
