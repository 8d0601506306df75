package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/milk9111/topdown/common"
	"github.com/milk9111/topdown/component"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/nav"
	"github.com/milk9111/topdown/prefabs"
	"github.com/milk9111/topdown/system"
)

type Game struct {
	world  *ecs.World
	level  *Level
	ctrl   *nav.Interaction
	walker *component.GridWalker
	agent  ecs.Entity

	input   *Input
	paused  bool
	pauseUI *ebitenui.UI
	debug   bool

	watcher *prefabs.Watcher
}

func NewGame(levelName string, debug bool) (*Game, error) {
	agentSpec, err := prefabs.LoadAgentSpec()
	if err != nil {
		return nil, err
	}
	navSpec, err := prefabs.LoadNavSpec()
	if err != nil {
		return nil, err
	}
	obstacleSpec, err := prefabs.LoadObstaclesSpec()
	if err != nil {
		return nil, err
	}

	lvl, err := LoadLevel(levelName, obstacleSpec.Obstacles)
	if err != nil {
		return nil, err
	}

	walker := &component.GridWalker{Speed: agentSpec.MoveSpeed}
	ctrl := nav.NewInteraction(
		nav.InteractionConfig{
			BreakDelay:        navSpec.BreakDelay,
			CancelOnSupersede: navSpec.CancelOnSupersede,
		},
		nav.NewPathFinder(nav.Config{Diagonal: navSpec.Diagonal}),
		&nav.Builder{Margin: navSpec.GridMargin},
		lvl.Ground(),
		lvl.Breakables(),
		lvl,
		walker,
	)

	world := ecs.NewWorld()
	agent := world.CreateEntity()
	ax, ay := lvl.CellCenter(nav.Coord{X: lvl.SpawnX, Y: lvl.SpawnY})
	agentColor, err := common.ParseHexColor(agentSpec.Color)
	if err != nil {
		agentColor = color.NRGBA{R: 0xe8, G: 0xb0, B: 0x4b, A: 0xff}
	}
	ecs.Add(world, agent, component.TransformComponent, &component.Transform{X: ax, Y: ay})
	ecs.Add(world, agent, component.GridWalkerComponent, walker)
	ecs.Add(world, agent, component.SpriteComponent, &component.Sprite{
		W: common.TileSize * 0.6, H: common.TileSize * 0.6, Color: agentColor,
	})
	ecs.Add(world, agent, component.PlayerTagComponent, &component.PlayerTag{})

	world.AddSystem(system.NewMoverSystem(lvl.CellCenter))
	world.AddSystem(system.NewInteractionSystem(world, ctrl))

	if script, err := system.NewBreakScript("on_break.tengo"); err != nil {
		log.Printf("game: break script disabled: %v", err)
	} else {
		world.AddSystem(system.NewScriptSystem(script))
	}

	watcher, err := prefabs.NewWatcher("prefabs")
	if err != nil {
		// normal when running from an installed binary with no prefab dir
		log.Printf("game: prefab watcher disabled: %v", err)
		watcher = nil
	}

	g := &Game{
		world:   world,
		level:   lvl,
		ctrl:    ctrl,
		walker:  walker,
		agent:   agent,
		input:   NewInput(),
		debug:   debug,
		watcher: watcher,
	}
	g.pauseUI = NewPauseUI(g)
	return g, nil
}

func (g *Game) Update() error {
	g.pollPrefabChanges()

	g.input.Update()
	if g.input.PausePressed {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if g.input.WalkPressed || g.input.BreakPressed {
		cell := g.level.WorldToCell(float64(g.input.CursorX), float64(g.input.CursorY))
		agent := g.agentCell()
		if g.input.WalkPressed {
			g.ctrl.RequestMove(agent, cell)
		} else {
			g.ctrl.RequestBreak(agent, cell)
		}
	}

	g.world.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

func (g *Game) agentCell() nav.Coord {
	t, ok := ecs.Get(g.world, g.agent, component.TransformComponent)
	if !ok {
		return nav.Coord{X: g.level.SpawnX, Y: g.level.SpawnY}
	}
	return g.level.WorldToCell(t.X, t.Y)
}

// pollPrefabChanges applies yaml edits without restarting: agent speed and
// the break/routing tunables reload in place.
func (g *Game) pollPrefabChanges() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reloadSpecs(name)
		case err, ok := <-g.watcher.Errors:
			if ok && err != nil {
				log.Printf("game: prefab watcher: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) reloadSpecs(changed string) {
	log.Printf("game: reloading prefabs after change to %s", changed)
	if spec, err := prefabs.LoadAgentSpec(); err != nil {
		log.Printf("game: reload agent spec: %v", err)
	} else {
		g.walker.Speed = spec.MoveSpeed
	}
	if spec, err := prefabs.LoadNavSpec(); err != nil {
		log.Printf("game: reload nav spec: %v", err)
	} else {
		g.ctrl.SetConfig(nav.InteractionConfig{
			BreakDelay:        spec.BreakDelay,
			CancelOnSupersede: spec.CancelOnSupersede,
		})
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawLayers(screen)
	g.drawRoutePreview(screen)
	g.drawHover(screen)
	g.drawSprites(screen)

	if g.debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf(
			"FPS: %.1f  state: %s  waypoints left: %d",
			ebiten.ActualFPS(), g.ctrl.State(), len(g.walker.Route)-g.walker.Index,
		))
	}
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) drawLayers(screen *ebiten.Image) {
	ground := g.level.Ground()
	groundColor, err := common.ParseHexColor(ground.color)
	if err != nil {
		groundColor = color.NRGBA{R: 0x5d, G: 0x9c, B: 0x4f, A: 0xff}
	}
	for y := 0; y < g.level.Height; y++ {
		for x := 0; x < g.level.Width; x++ {
			c := nav.Coord{X: x, Y: y}
			if !ground.HasTile(c) {
				continue
			}
			drawCell(screen, c, groundColor)
		}
	}

	for _, layer := range g.level.Obstacles() {
		clr, err := common.ParseHexColor(layer.class.Color)
		if err != nil {
			clr = color.NRGBA{R: 0x60, G: 0x60, B: 0x60, A: 0xff}
		}
		canopy := clr
		canopy.A = 150
		for y := 0; y < g.level.Height; y++ {
			for x := 0; x < g.level.Width; x++ {
				c := nav.Coord{X: x, Y: y}
				switch {
				case layer.Blocks(c):
					drawCell(screen, c, clr)
				case layer.HasTile(c):
					drawCell(screen, c, canopy)
				}
			}
		}
	}

	if root, ok := g.ctrl.PendingBreak(); ok {
		x, y := cellOrigin(root)
		vector.StrokeRect(screen, x, y, common.TileSize, common.TileSize, 2,
			color.NRGBA{R: 0xd6, G: 0x4b, B: 0x3a, A: 0xff}, false)
	}
}

func (g *Game) drawRoutePreview(screen *ebiten.Image) {
	const dot = 6
	for _, c := range g.walker.Route[g.walker.Index:] {
		cx, cy := g.level.CellCenter(c)
		vector.DrawFilledRect(screen,
			float32(cx)-dot/2, float32(cy)-dot/2, dot, dot,
			color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xb0}, false)
	}
}

func (g *Game) drawHover(screen *ebiten.Image) {
	cell := g.level.WorldToCell(float64(g.input.CursorX), float64(g.input.CursorY))
	x, y := cellOrigin(cell)
	clr := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x80}
	if !g.ctrl.Grid().Walkable(cell) {
		clr = color.NRGBA{R: 0xd6, G: 0x4b, B: 0x3a, A: 0x80}
	}
	vector.StrokeRect(screen, x, y, common.TileSize, common.TileSize, 1, clr, false)
}

func (g *Game) drawSprites(screen *ebiten.Image) {
	ecs.ForEach(g.world, component.SpriteComponent, func(e ecs.Entity, s *component.Sprite) {
		t, ok := ecs.Get(g.world, e, component.TransformComponent)
		if !ok {
			return
		}
		vector.DrawFilledRect(screen,
			float32(t.X-s.W/2), float32(t.Y-s.H/2),
			float32(s.W), float32(s.H), s.Color, false)
	})
}

func cellOrigin(c nav.Coord) (float32, float32) {
	return float32(c.X * common.TileSize), float32(c.Y * common.TileSize)
}

func drawCell(screen *ebiten.Image, c nav.Coord, clr color.Color) {
	x, y := cellOrigin(c)
	vector.DrawFilledRect(screen, x, y, common.TileSize, common.TileSize, clr, false)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.level.Width * common.TileSize, g.level.Height * common.TileSize
}
