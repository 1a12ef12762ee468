package entities

import "testing"

func TestVelocityClass_Ordering(t *testing.T) {
	classes := []VelocityClass{ClassA, ClassB, ClassC, ClassD}
	for i := 1; i < len(classes); i++ {
		if classes[i-1].Rank() >= classes[i].Rank() {
			t.Errorf("Expected %s to rank before %s", classes[i-1], classes[i])
		}
	}
	if VelocityClass("X").Valid() {
		t.Error("Expected unknown class to be invalid")
	}
}

func TestVelocityClass_Priority(t *testing.T) {
	expected := map[VelocityClass]Priority{
		ClassA: PriorityHigh,
		ClassB: PriorityMedium,
		ClassC: PriorityLow,
		ClassD: PriorityLow,
	}
	for class, priority := range expected {
		if got := class.Priority(); got != priority {
			t.Errorf("Class %s: expected priority %d, got %d", class, priority, got)
		}
	}
}

func TestMisplacement_IsDemotion(t *testing.T) {
	if !(Misplacement{CurrentZone: "A", ExpectedZone: "C"}).IsDemotion() {
		t.Error("Expected A -> C to be a demotion")
	}
	if (Misplacement{CurrentZone: "C", ExpectedZone: "A"}).IsDemotion() {
		t.Error("Expected C -> A to be a promotion")
	}
	if (Misplacement{CurrentZone: "Z", ExpectedZone: "C"}).IsDemotion() {
		t.Error("Expected unknown current zone not to count as a demotion")
	}
}
