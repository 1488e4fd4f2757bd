package ecs

// UpdateFrame is passed to every system during one Scheduler tick.
type UpdateFrame struct {
	DeltaTime float64
	// Number counts frames from 1; it matches Scheduler.CurrentFrame.
	Number   uint64
	Commands *Commands
	Scene    *Scene
}

func newUpdateFrame(dt float64, number uint64, scene *Scene) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Number:    number,
		Commands:  newCommands(),
		Scene:     scene,
	}
}
