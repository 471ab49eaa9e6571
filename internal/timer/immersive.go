package timer

// Presenter acquires and releases exclusive full-screen display.
type Presenter interface {
	EnterFullscreen() error
	ExitFullscreen() error
}

// Immersive tracks whether the timer view is open in full-screen mode. The
// open flag is independent of whether the timer runs, and presenter failures
// never change it.
type Immersive struct {
	presenter Presenter
	open      bool
	acquired  bool
}

func NewImmersive(p Presenter) *Immersive {
	return &Immersive{presenter: p}
}

func (i *Immersive) Open() bool {
	return i.open
}

// Acquired reports whether the presenter actually granted full-screen display.
func (i *Immersive) Acquired() bool {
	return i.acquired
}

func (i *Immersive) Enter() {
	if i.open {
		return
	}
	i.open = true
	if i.presenter == nil {
		return
	}
	i.acquired = i.presenter.EnterFullscreen() == nil
}

func (i *Immersive) Exit() {
	if !i.open {
		return
	}
	i.open = false
	if i.presenter != nil && i.acquired {
		_ = i.presenter.ExitFullscreen()
	}
	i.acquired = false
}

func (i *Immersive) Toggle() {
	if i.open {
		i.Exit()
		return
	}
	i.Enter()
}
