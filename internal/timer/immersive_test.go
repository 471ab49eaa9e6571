package timer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakePresenter struct {
	enterErr error
	exitErr  error
	enters   int
	exits    int
}

func (p *fakePresenter) EnterFullscreen() error {
	p.enters++
	return p.enterErr
}

func (p *fakePresenter) ExitFullscreen() error {
	p.exits++
	return p.exitErr
}

func TestImmersiveToggle(t *testing.T) {
	p := &fakePresenter{}
	im := NewImmersive(p)

	im.Toggle()
	assert.True(t, im.Open())
	assert.True(t, im.Acquired())

	im.Toggle()
	assert.False(t, im.Open())
	assert.False(t, im.Acquired())
	assert.Equal(t, 1, p.enters)
	assert.Equal(t, 1, p.exits)
}

func TestImmersiveSwallowsPresenterFailures(t *testing.T) {
	p := &fakePresenter{enterErr: errors.New("not a terminal")}
	im := NewImmersive(p)

	im.Enter()
	assert.True(t, im.Open())
	assert.False(t, im.Acquired())

	// nothing was acquired, so nothing is released
	im.Exit()
	assert.False(t, im.Open())
	assert.Equal(t, 0, p.exits)

	p.enterErr = nil
	p.exitErr = errors.New("release failed")
	im.Enter()
	im.Exit()
	assert.False(t, im.Open())
	assert.Equal(t, 1, p.exits)
}

func TestImmersiveIsIndependentOfTimer(t *testing.T) {
	im := NewImmersive(nil)
	im.Enter()
	im.Enter()
	assert.True(t, im.Open())
	assert.False(t, im.Acquired())
	im.Exit()
	assert.False(t, im.Open())
}
