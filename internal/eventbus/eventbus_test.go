package eventbus

import "testing"

func TestPublishInvokesOnlySubscribedTopic(t *testing.T) {
	b := New()
	var fileEvents, termEvents int
	b.Subscribe(FileSaved, func(Event) { fileEvents++ })
	b.Subscribe(TerminalCreated, func(Event) { termEvents++ })

	b.Publish(Event{Topic: FileSaved, Path: "main.go"})

	if fileEvents != 1 {
		t.Errorf("fileEvents = %d, want 1", fileEvents)
	}
	if termEvents != 0 {
		t.Errorf("termEvents = %d, want 0", termEvents)
	}
}

func TestPublishInvokesMultipleSubscribersInOrder(t *testing.T) {
	b := New()
	var order []int
	b.Subscribe(ThemeChanged, func(Event) { order = append(order, 1) })
	b.Subscribe(ThemeChanged, func(Event) { order = append(order, 2) })

	b.Publish(Event{Topic: ThemeChanged})

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("order = %v, want [1 2]", order)
	}
}

func TestPublishWithNoSubscribersIsNoop(t *testing.T) {
	b := New()
	b.Publish(Event{Topic: FileClosed}) // must not panic
}
