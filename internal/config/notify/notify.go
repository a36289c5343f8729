// Package notify delivers configuration reload notifications to
// consumers. Each functional area of the configuration (display,
// timer, hotkeys, ...) can be observed independently, so a subsystem
// reloads only what actually changed.
package notify

import (
	"sync"
)

// Area identifies one functional slice of the configuration.
type Area string

const (
	AreaDisplay        Area = "display"
	AreaTimer          Area = "timer"
	AreaPomodoro       Area = "pomodoro"
	AreaNotification   Area = "notification"
	AreaHotkeys        Area = "hotkeys"
	AreaRecentFiles    Area = "recentfiles"
	AreaColors         Area = "colors"
	AreaAnimationPath  Area = "animation-path"
	AreaAnimationSpeed Area = "animation-speed"
)

// Areas lists every area in delivery order.
func Areas() []Area {
	return []Area{
		AreaDisplay,
		AreaTimer,
		AreaPomodoro,
		AreaNotification,
		AreaHotkeys,
		AreaRecentFiles,
		AreaColors,
		AreaAnimationPath,
		AreaAnimationSpeed,
	}
}

// Change represents one reload event.
type Change struct {
	// Area is the configuration slice that changed. Empty for a
	// full-configuration reload.
	Area Area

	// Source identifies where the change came from ("watcher",
	// "writer", ...).
	Source string
}

// Observer is called when a configuration area changes.
type Observer func(change Change)

// Subscription represents an active observer registration.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes this subscription.
func (s *Subscription) Unsubscribe() {
	if s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

// Notifier manages reload subscriptions.
type Notifier struct {
	mu sync.RWMutex

	// Global observers receive every change.
	globalObservers map[uint64]Observer

	// Area-specific observers.
	areaObservers map[Area]map[uint64]Observer

	nextID uint64
	closed bool
}

// New creates a new Notifier.
func New() *Notifier {
	return &Notifier{
		globalObservers: make(map[uint64]Observer),
		areaObservers:   make(map[Area]map[uint64]Observer),
	}
}

// Subscribe registers an observer for all changes.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.globalObservers[id] = observer

	return &Subscription{id: id, notifier: n}
}

// SubscribeArea registers an observer for one configuration area.
func (n *Notifier) SubscribeArea(area Area, observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++

	if n.areaObservers[area] == nil {
		n.areaObservers[area] = make(map[uint64]Observer)
	}
	n.areaObservers[area][id] = observer

	return &Subscription{id: id, notifier: n}
}

// NotifyArea delivers a change for one area.
func (n *Notifier) NotifyArea(area Area, source string) {
	n.deliver(Change{Area: area, Source: source})
}

// NotifyReload delivers one change per area, in Areas order. Used
// after an external file change where any slice may have moved.
func (n *Notifier) NotifyReload(source string) {
	for _, area := range Areas() {
		n.deliver(Change{Area: area, Source: source})
	}
}

// Close stops delivery. Safe to call multiple times.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true
}

func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	delete(n.globalObservers, id)

	for area, observers := range n.areaObservers {
		delete(observers, id)
		if len(observers) == 0 {
			delete(n.areaObservers, area)
		}
	}
}

// deliver sends a change to all matching observers, outside the lock.
func (n *Notifier) deliver(change Change) {
	n.mu.RLock()
	if n.closed {
		n.mu.RUnlock()
		return
	}

	var observers []Observer
	for _, obs := range n.globalObservers {
		observers = append(observers, obs)
	}
	if areaObs, ok := n.areaObservers[change.Area]; ok {
		for _, obs := range areaObs {
			observers = append(observers, obs)
		}
	}
	n.mu.RUnlock()

	for _, obs := range observers {
		obs(change)
	}
}
