package objects

import (
	"mini-mw/internal/graphics"
	"mini-mw/internal/world"
)

// Animation is the playback state of one actor.
type Animation struct {
	Handle  string
	Group   string
	Time    float32
	Playing bool
}

// Play starts group from the beginning.
func (a *Animation) Play(group string) {
	a.Group = group
	a.Time = 0
	a.Playing = true
}

func (a *Animation) update(dt float32) {
	if a.Playing {
		a.Time += dt
	}
}

// Actors implements the container of creatures and NPCs
type Actors struct {
	container
	animations map[string]*Animation
}

func NewActors(scene *graphics.Scene) *Actors {
	return &Actors{
		container:  newContainer(scene, "actors"),
		animations: make(map[string]*Animation),
	}
}

// InsertActor instantiates an actor with an idle animation.
func (a *Actors) InsertActor(ptr world.Ptr) error {
	if err := a.insert(ptr); err != nil {
		return err
	}
	anim := &Animation{Handle: ptr.Handle}
	anim.Play("idle")
	a.animations[ptr.Handle] = anim
	return nil
}

func (a *Actors) RemoveCell(cell *world.Cell) {
	for _, ptr := range a.removeCell(cell) {
		delete(a.animations, ptr.Handle)
	}
}

func (a *Actors) DeleteObject(ptr world.Ptr) bool {
	if !a.deleteObject(ptr) {
		return false
	}
	delete(a.animations, ptr.Handle)
	return true
}

func (a *Actors) UpdateObjectCell(old, cur world.Ptr) error {
	if err := a.updateObjectCell(old, cur); err != nil {
		return err
	}
	if anim, ok := a.animations[old.Handle]; ok {
		delete(a.animations, old.Handle)
		anim.Handle = cur.Handle
		a.animations[cur.Handle] = anim
	}
	return nil
}

// Animation returns the animation of an actor.
func (a *Actors) Animation(ptr world.Ptr) (*Animation, bool) {
	anim, ok := a.animations[ptr.Handle]
	return anim, ok
}

func (a *Actors) Update(dt float32) error {
	for _, anim := range a.animations {
		anim.update(dt)
	}
	return nil
}

func (a *Actors) Len() int { return a.len() }

func (a *Actors) Dispose() {
	a.dispose()
	a.animations = make(map[string]*Animation)
}
