package state

// TextureID is an opaque handle to an image uploaded to the rendering engine.
type TextureID int

// NoTexture is the zero handle.
const NoTexture TextureID = 0

// State is the interaction state shared with the rendering engine. A value of
// State is one snapshot; it is copied whole on every read and publish.
type State struct {
	IconCount int
	Visible   bool

	ScrollX        int
	CurrentScrollX int
	StartScrollX   int

	// FlingTimeMs is the monotonic time the fling began, 0 when none has.
	FlingTimeMs int64
	// FlingVelocityX is in px/s; non-zero means momentum scrolling is active.
	FlingVelocityX int

	// Outputs of the renderer's settle animation.
	AdjustedDeceleration int
	FlingDuration        int
	FlingEndPos          int

	// SelectedIconIndex is -1 or an index below IconCount.
	SelectedIconIndex   int
	SelectedIconTexture TextureID
}

// Initial returns the state every buffer starts from.
func Initial() State {
	return State{SelectedIconIndex: -1}
}

// Flinging reports whether momentum scrolling is active.
func (s State) Flinging() bool {
	return s.FlingVelocityX != 0
}

// Params are the layout parameters pushed to the renderer once at attach.
type Params struct {
	BubbleWidth        int
	BubbleHeight       int
	BubbleBitmapWidth  int
	BubbleBitmapHeight int

	ScrollHandleID            TextureID
	ScrollHandleTextureWidth  int
	ScrollHandleTextureHeight int
}
