// Package player owns a posed skeleton instance and its animation state,
// advancing both per frame. It is the unit the web layer exposes.
package player

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/mogaika/rig2d/animstate"
	"github.com/mogaika/rig2d/rig"
)

// Player couples one skeleton instance with one animation state. All
// methods are safe for concurrent use; the pose readers in the web layer
// share it with the update loop.
type Player struct {
	mu sync.Mutex

	skeleton *rig.Skeleton
	state    *animstate.State

	// generation increments on every Update so pose readers can skip
	// frames they already streamed.
	generation uint64
}

func NewPlayer(skeletonData *rig.SkeletonData, stateData *animstate.StateData) *Player {
	p := &Player{
		skeleton: rig.NewSkeleton(skeletonData),
		state:    animstate.NewState(stateData),
	}
	p.skeleton.UpdateWorldTransform()
	return p
}

// Update advances playback by delta seconds and reposes the skeleton.
func (p *Player) Update(delta float32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.skeleton.Time += delta
	p.state.Update(delta)
	p.state.Apply(p.skeleton)
	p.skeleton.UpdateWorldTransform()
	p.generation++
}

// Generation returns the number of updates applied so far.
func (p *Player) Generation() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.generation
}

// Play crossfades track 0 to the named animation.
func (p *Player) Play(animationName string, loop bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, err := p.state.SetAnimationByName(0, animationName, loop)
	return errors.Wrapf(err, "player: play %q", animationName)
}

// Queue appends the named animation after the current one on track 0.
func (p *Player) Queue(animationName string, loop bool, delay float32) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, err := p.state.AddAnimationByName(0, animationName, loop, delay)
	return errors.Wrapf(err, "player: queue %q", animationName)
}

// Stop fades every track out to the setup pose.
func (p *Player) Stop(mixDuration float32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.SetEmptyAnimations(mixDuration)
}

// AddListener registers a playback listener on the animation state.
func (p *Player) AddListener(listener animstate.Listener) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.AddListener(listener)
}

// WithSkeleton runs f with the pose lock held. f must not retain the
// skeleton past the call.
func (p *Player) WithSkeleton(f func(skeleton *rig.Skeleton)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	f(p.skeleton)
}

// WithState runs f with the pose lock held. f must not retain the state
// past the call.
func (p *Player) WithState(f func(state *animstate.State)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	f(p.state)
}
