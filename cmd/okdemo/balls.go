package main

import (
	"image/color"
	"math/rand"

	"github.com/plus3/okit/ecs"
	"github.com/plus3/okit/framelog"
)

var BodyType = ecs.NewComponentType("okdemo.Body")

// Body is a moving circle.
type Body struct {
	ecs.Base
	X, Y    float64
	VX, VY  float64
	Radius  float64
	Color   color.RGBA
	Bounces int
}

func (b *Body) Type() ecs.ComponentType { return BodyType }

func (b *Body) Update(dt float64) {
	b.X += b.VX * dt
	b.Y += b.VY * dt
}

// BounceSystem keeps bodies inside the window and logs each bounce.
type BounceSystem struct {
	Bodies        *ecs.ComponentSystem[*Body]
	Width, Height float64
	Log           *framelog.Log
}

func (s *BounceSystem) Execute(*ecs.UpdateFrame) {
	for _, b := range s.Bodies.Components() {
		bounced := false
		if b.X-b.Radius < 0 && b.VX < 0 || b.X+b.Radius > s.Width && b.VX > 0 {
			b.VX = -b.VX
			bounced = true
		}
		if b.Y-b.Radius < 0 && b.VY < 0 || b.Y+b.Radius > s.Height && b.VY > 0 {
			b.VY = -b.VY
			bounced = true
		}
		if bounced {
			b.Bounces++
			s.Log.Add("bounce", framelog.Object(b.Entity()))
		}
	}
}

func spawnBalls(scene *ecs.Scene, n int, width, height float64) {
	rng := rand.New(rand.NewSource(1))
	for i := range n {
		radius := 8 + rng.Float64()*16
		scene.NewEntity("", &Body{
			X:      radius + rng.Float64()*(width-2*radius),
			Y:      radius + rng.Float64()*(height-2*radius),
			VX:     rng.Float64()*400 - 200,
			VY:     rng.Float64()*400 - 200,
			Radius: radius,
			Color:  palette[i%len(palette)],
		})
	}
}
