package game

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// tilePx is the native pixel size of one tile in the world buffer.
const tilePx = 24

// borderWidth is the pixel gap between the window edge and the city view.
const borderWidth = 24

// panelWidth is the right-hand HUD panel.
const panelWidth = 232

// simDT is the fixed simulation timestep; the speed multiplier scales it.
const simDT = 1.0 / 60.0

// Tool is the active mouse placement tool.
type Tool uint8

const (
	ToolRail Tool = iota
	ToolRoad
	ToolStation
	ToolHouse
	ToolBulldoze
	toolCount // sentinel
)

func (t Tool) String() string {
	switch t {
	case ToolRail:
		return "rail"
	case ToolRoad:
		return "road"
	case ToolStation:
		return "station"
	case ToolHouse:
		return "house"
	case ToolBulldoze:
		return "bulldoze"
	default:
		return "?"
	}
}

var (
	ballastColour = color.RGBA{R: 82, G: 74, B: 64, A: 255}
	tieColour     = color.RGBA{R: 74, G: 52, B: 36, A: 255}
	railColour    = color.RGBA{R: 156, G: 156, B: 160, A: 255}
	roadMarkCol   = color.RGBA{R: 120, G: 118, B: 108, A: 160}
)

type Game struct {
	world *World

	width    int
	height   int
	viewW    int // pixel size of the city viewport
	viewH    int
	offX     int
	offY     int
	worldBuf *ebiten.Image // full city at native resolution; camera applies on blit

	camX    float64 // world-space centre of the camera
	camY    float64
	camZoom float64

	simSpeed float64 // 0=paused, 0.5, 1, 2, 4
	tool     Tool

	prevKeys      map[ebiten.Key]bool
	prevMouseLeft bool

	hudFace   text.Face
	statusMsg string
	statusTTL int // frames the status line stays visible
}

func New() *Game {
	return NewWithSeed(time.Now().UnixNano())
}

func NewWithSeed(seed int64) *Game {
	worldPx := GridSize * tilePx
	g := &Game{
		world:    NewWorld(seed),
		viewW:    1000,
		viewH:    760,
		offX:     borderWidth,
		offY:     borderWidth,
		worldBuf: ebiten.NewImage(worldPx, worldPx),
		camX:     float64(worldPx) / 2,
		camY:     float64(worldPx) / 2,
		camZoom:  0.9,
		simSpeed: 1.0,
		prevKeys: make(map[ebiten.Key]bool),
		hudFace:  text.NewGoXFace(basicfont.Face7x13),
	}
	g.width = borderWidth + g.viewW + borderWidth + panelWidth
	g.height = borderWidth + g.viewH + borderWidth
	return g
}

func (g *Game) Update() error {
	g.handleInput()
	if g.statusTTL > 0 {
		g.statusTTL--
	}
	if g.simSpeed > 0 {
		g.world.Step(simDT, g.simSpeed)
	}
	return nil
}

func (g *Game) handleInput() {
	currentKeys := map[ebiten.Key]bool{}
	pressed := func(k ebiten.Key) bool {
		currentKeys[k] = ebiten.IsKeyPressed(k)
		return currentKeys[k] && !g.prevKeys[k]
	}

	// Tool selection: 1-5.
	toolKeys := [toolCount]ebiten.Key{
		ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	}
	for i, k := range toolKeys {
		if pressed(k) {
			g.tool = Tool(i)
		}
	}

	// Camera pan: WASD or arrows.
	panSpeed := 6.0 / g.camZoom
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		g.camY -= panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		g.camY += panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		g.camX -= panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		g.camX += panSpeed
	}

	// Zoom: wheel or =/-.
	const zoomMin, zoomMax = 0.5, 4.0
	_, wy := ebiten.Wheel()
	if wy != 0 {
		g.camZoom *= math.Pow(1.12, wy)
	}
	if pressed(ebiten.KeyEqual) {
		g.camZoom *= 1.25
	}
	if pressed(ebiten.KeyMinus) {
		g.camZoom /= 1.25
	}
	if g.camZoom < zoomMin {
		g.camZoom = zoomMin
	}
	if g.camZoom > zoomMax {
		g.camZoom = zoomMax
	}
	g.clampCamera()

	// Sim speed: P toggles pause, comma/period step through the presets.
	speeds := []float64{0, 0.5, 1, 2, 4}
	if pressed(ebiten.KeyP) {
		if g.simSpeed > 0 {
			g.simSpeed = 0
		} else {
			g.simSpeed = 1
		}
	}
	if pressed(ebiten.KeyComma) {
		for i, s := range speeds {
			if s >= g.simSpeed && i > 0 {
				g.simSpeed = speeds[i-1]
				break
			}
		}
	}
	if pressed(ebiten.KeyPeriod) {
		for i, s := range speeds {
			if s >= g.simSpeed && i < len(speeds)-1 {
				g.simSpeed = speeds[i+1]
				break
			}
		}
	}

	// C: copy the network report to the clipboard.
	if pressed(ebiten.KeyC) {
		if err := g.world.BuildNetworkReport().CopyToClipboard(); err != nil {
			g.setStatus("clipboard copy failed")
		} else {
			g.setStatus("report copied to clipboard")
		}
	}

	// Left mouse: apply the active tool to the tile under the cursor.
	mouseLeft := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if mouseLeft {
		mx, my := ebiten.CursorPosition()
		if x, y, ok := g.screenToTile(mx, my); ok {
			// Station placement is click-edge only; the rest paint while held.
			if g.tool != ToolStation || !g.prevMouseLeft {
				g.applyTool(x, y)
			}
		}
	}
	g.prevMouseLeft = mouseLeft

	g.prevKeys = currentKeys
}

func (g *Game) clampCamera() {
	worldPx := float64(GridSize * tilePx)
	halfW := float64(g.viewW) / 2 / g.camZoom
	halfH := float64(g.viewH) / 2 / g.camZoom
	if halfW > worldPx/2 {
		halfW = worldPx / 2
	}
	if halfH > worldPx/2 {
		halfH = worldPx / 2
	}
	g.camX = math.Min(math.Max(g.camX, halfW), worldPx-halfW)
	g.camY = math.Min(math.Max(g.camY, halfH), worldPx-halfH)
}

func (g *Game) applyTool(x, y int) {
	grid := g.world.Grid
	switch g.tool {
	case ToolRail:
		grid.Place(x, y, BuildingRail)
	case ToolRoad:
		grid.Place(x, y, BuildingRoad)
	case ToolStation:
		if grid.CanPlaceStation(x, y) {
			grid.Place(x, y, BuildingRailStation)
		} else {
			g.setStatus("station needs a clear 2x2 footprint")
		}
	case ToolHouse:
		if grid.BuildingAt(x, y) == BuildingEmpty && !grid.IsRailStation(x, y) {
			grid.Place(x, y, BuildingHouse)
		}
	case ToolBulldoze:
		grid.Bulldoze(x, y)
	}
}

// screenToTile maps a window pixel to grid coordinates, or ok=false when the
// cursor is outside the city viewport. Screen x follows the grid's y axis.
func (g *Game) screenToTile(mx, my int) (int, int, bool) {
	if mx < g.offX || my < g.offY || mx >= g.offX+g.viewW || my >= g.offY+g.viewH {
		return 0, 0, false
	}
	fx := float64(mx-g.offX-g.viewW/2)/g.camZoom + g.camX
	fy := float64(my-g.offY-g.viewH/2)/g.camZoom + g.camY
	if fx < 0 || fy < 0 {
		return 0, 0, false
	}
	x := int(fy) / tilePx
	y := int(fx) / tilePx
	if x < 0 || y < 0 || x >= GridSize || y >= GridSize {
		return 0, 0, false
	}
	return x, y, true
}

func (g *Game) setStatus(msg string) {
	g.statusMsg = msg
	g.statusTTL = 180
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 14, G: 16, B: 14, A: 255})

	g.drawWorld()

	// Blit the world buffer through the camera into the clipped viewport.
	view := screen.SubImage(image.Rect(g.offX, g.offY, g.offX+g.viewW, g.offY+g.viewH)).(*ebiten.Image)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-g.camX, -g.camY)
	op.GeoM.Scale(g.camZoom, g.camZoom)
	op.GeoM.Translate(float64(g.offX+g.viewW/2), float64(g.offY+g.viewH/2))
	view.DrawImage(g.worldBuf, op)

	ox, oy := float32(g.offX), float32(g.offY)
	vector.StrokeRect(screen, ox-1, oy-1, float32(g.viewW)+2, float32(g.viewH)+2, 2.0,
		color.RGBA{R: 70, G: 90, B: 70, A: 255}, false)

	g.drawHUD(screen)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("zoom: %.1fx", g.camZoom), g.offX+6, g.offY+6)
}

// drawWorld renders the full city into the world buffer at native scale.
func (g *Game) drawWorld() {
	g.worldBuf.Fill(color.RGBA{R: 56, G: 76, B: 48, A: 255})
	grid := g.world.Grid

	for x := 0; x < grid.Size; x++ {
		for y := 0; y < grid.Size; y++ {
			g.drawTileGround(x, y)
		}
	}
	// Station halls span 2x2 tiles, so they go in their own pass: drawn from
	// the origin they would otherwise be painted over by later ground tiles.
	for _, s := range grid.StationOrigins() {
		g.drawStationHall(s[0], s[1])
	}
	for x := 0; x < grid.Size; x++ {
		for y := 0; y < grid.Size; y++ {
			g.drawTileTrack(x, y)
		}
	}
	for _, t := range g.world.Trains {
		g.drawTrain(t)
	}
}

func (g *Game) drawTileGround(x, y int) {
	grid := g.world.Grid
	t := grid.Tiles[x*grid.Size+y]
	// Screen x follows grid y, screen y follows grid x.
	px := float32(y * tilePx)
	py := float32(x * tilePx)

	r, gr, b := buildingBaseColour(t.Building)
	if t.Building == BuildingHouse || t.Building == BuildingShop || t.Building == BuildingFactory {
		r += t.Variant
		gr += t.Variant
		b += t.Variant
	}
	vector.FillRect(g.worldBuf, px, py, tilePx, tilePx, color.RGBA{R: r, G: gr, B: b, A: 255}, false)

	switch t.Building {
	case BuildingRoad:
		g.drawRoadMarkings(x, y, px, py)
	case BuildingHouse, BuildingShop, BuildingFactory:
		// Inset block with a simple roof edge.
		vector.FillRect(g.worldBuf, px+3, py+3, tilePx-6, tilePx-6,
			color.RGBA{R: r + 18, G: gr + 18, B: b + 14, A: 255}, false)
		vector.StrokeLine(g.worldBuf, px+3, py+tilePx-3, px+tilePx-3, py+tilePx-3,
			1.0, color.RGBA{R: 20, G: 18, B: 16, A: 160}, false)
	}
}

// drawStationHall draws the 2x2 station building from its origin tile.
func (g *Game) drawStationHall(x, y int) {
	px := float32(y * tilePx)
	py := float32(x * tilePx)
	vector.FillRect(g.worldBuf, px+2, py+2, tilePx*2-4, tilePx*2-4,
		color.RGBA{R: 112, G: 84, B: 58, A: 255}, false)
	vector.StrokeRect(g.worldBuf, px+2, py+2, tilePx*2-4, tilePx*2-4,
		1.0, color.RGBA{R: 58, G: 40, B: 26, A: 255}, false)
	vector.FillRect(g.worldBuf, px+tilePx-6, py+4, 12, tilePx*2-8,
		color.RGBA{R: 150, G: 118, B: 84, A: 255}, false)
}

// drawRoadMarkings adds centre dashes continuing toward neighboring roads.
func (g *Game) drawRoadMarkings(x, y int, px, py float32) {
	grid := g.world.Grid
	cx := px + tilePx/2
	cy := py + tilePx/2
	if grid.BuildingAt(x-1, y) == BuildingRoad { // north neighbor, screen-up
		vector.StrokeLine(g.worldBuf, cx, py, cx, cy, 1.0, roadMarkCol, false)
	}
	if grid.BuildingAt(x+1, y) == BuildingRoad {
		vector.StrokeLine(g.worldBuf, cx, cy, cx, py+tilePx, 1.0, roadMarkCol, false)
	}
	if grid.BuildingAt(x, y-1) == BuildingRoad { // east neighbor, screen-left
		vector.StrokeLine(g.worldBuf, px, cy, cx, cy, 1.0, roadMarkCol, false)
	}
	if grid.BuildingAt(x, y+1) == BuildingRoad {
		vector.StrokeLine(g.worldBuf, cx, cy, px+tilePx, cy, 1.0, roadMarkCol, false)
	}
}

// drawTileTrack draws the rail layers for one tile: the full ballast/tie/
// rail stack on dedicated rail tiles, rails only when inset into a road.
func (g *Game) drawTileTrack(x, y int) {
	grid := g.world.Grid
	t := grid.Tiles[x*grid.Size+y]
	px := float64(y * tilePx)
	py := float64(x * tilePx)

	switch {
	case t.Building == BuildingRail:
		layers := TrackGeometry(grid.AdjacentRail(x, y).TrackType(), tilePx)
		g.strokeSegments(layers.Ballast, px, py, ballastColour)
		g.strokeSegments(layers.Ties, px, py, tieColour)
		g.strokeSegments(layers.Rails, px, py, railColour)
	case t.Building == BuildingRoad && t.HasRailOverlay:
		rails := RailsOnlyGeometry(grid.AdjacentRailForOverlay(x, y).TrackType(), tilePx)
		g.strokeSegments(rails, px, py, railColour)
	}
}

func (g *Game) strokeSegments(segs []Segment, px, py float64, col color.RGBA) {
	for _, s := range segs {
		vector.StrokeLine(g.worldBuf,
			float32(px+s.X0), float32(py+s.Y0),
			float32(px+s.X1), float32(py+s.Y1),
			float32(s.W), col, false)
	}
}

// drawTrain renders the carriages tail-first so the locomotive sits on top
// at crossings.
func (g *Game) drawTrain(t *Train) {
	for i := len(t.Carriages) - 1; i >= 0; i-- {
		c := t.Carriages[i]
		pose := CarriageWorldPose(g.world.Grid, c, tilePx)

		length := 0.52 * tilePx
		width := float32(0.16 * tilePx)
		if c.Type == CarriageLocomotive {
			length = 0.58 * tilePx
			width = float32(0.19 * tilePx)
		}
		dx := math.Cos(pose.Angle) * length / 2
		dy := math.Sin(pose.Angle) * length / 2

		// Body as one thick oriented stroke, with a darker outline pass.
		vector.StrokeLine(g.worldBuf,
			float32(pose.PX-dx), float32(pose.PY-dy),
			float32(pose.PX+dx), float32(pose.PY+dy),
			width+2, color.RGBA{R: 20, G: 18, B: 16, A: 200}, false)
		vector.StrokeLine(g.worldBuf,
			float32(pose.PX-dx), float32(pose.PY-dy),
			float32(pose.PX+dx), float32(pose.PY+dy),
			width, c.Colour, false)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	px := g.offX + g.viewW + borderWidth
	vector.FillRect(screen, float32(px), float32(g.offY), panelWidth-borderWidth, float32(g.viewH),
		color.RGBA{R: 22, G: 26, B: 22, A: 255}, false)

	rails := g.world.Grid.CountRailTiles()
	lines := []string{
		"TINYBURG",
		"",
		fmt.Sprintf("speed: %gx", g.simSpeed),
		fmt.Sprintf("tool:  %s", g.tool),
		"",
		fmt.Sprintf("rail tiles: %d", rails),
		fmt.Sprintf("stations:   %d", len(g.world.Grid.StationOrigins())),
		fmt.Sprintf("trains:     %d / %d", len(g.world.Trains), TrainCap(rails)),
		"",
		"[1] rail   [2] road",
		"[3] station",
		"[4] house  [5] bulldoze",
		"[p] pause  [,/.] speed",
		"[c] copy report",
		"[wasd] pan [=/-] zoom",
	}
	if g.statusTTL > 0 {
		lines = append(lines, "", g.statusMsg)
	}
	for i, s := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(float64(px+10), float64(g.offY+12+i*16))
		op.ColorScale.ScaleWithColor(color.RGBA{R: 200, G: 210, B: 196, A: 255})
		text.Draw(screen, s, g.hudFace, op)
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
