package ecs

// System is run once per frame by a Scheduler, in registration order.
// ComponentSystem is the usual implementation; any type with custom
// per-frame logic can implement it too.
type System interface {
	Execute(frame *UpdateFrame)
}

// Named lets a system choose the name shown in scheduler stats.
type Named interface {
	Name() string
}
