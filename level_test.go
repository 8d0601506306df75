package main

import (
	"testing"

	"github.com/milk9111/topdown/nav"
	"github.com/milk9111/topdown/prefabs"
)

func testClasses() map[string]prefabs.ObstacleClass {
	return map[string]prefabs.ObstacleClass{
		"tree": {
			Blocking:   []int{1},
			Decorative: []int{2},
			Canopy: []prefabs.Offset{
				{X: 0, Y: -1}, {X: -1, Y: -1}, {X: 1, Y: -1},
			},
		},
		"rock": {Blocking: []int{1}},
	}
}

const testLevelJSON = `{
	"name": "test",
	"width": 4,
	"height": 4,
	"spawn_x": 0,
	"spawn_y": 3,
	"layers": [
		{"name": "grass", "kind": "ground",
		 "tiles": [1,1,1,1, 1,1,1,1, 1,1,1,1, 1,1,1,1]},
		{"name": "trees", "kind": "obstacle", "obstacle": "tree",
		 "tiles": [0,2,2,2, 0,0,1,0, 0,0,0,0, 0,0,0,0]},
		{"name": "rocks", "kind": "obstacle", "obstacle": "rock",
		 "tiles": [0,0,0,0, 0,0,0,0, 0,1,0,0, 0,0,0,0]}
	]
}`

func TestParseLevelClassification(t *testing.T) {
	lvl, err := parseLevel([]byte(testLevelJSON), testClasses())
	if err != nil {
		t.Fatalf("parse level: %v", err)
	}

	trees := lvl.Obstacles()[0]
	rocks := lvl.Obstacles()[1]

	checks := []struct {
		name   string
		blocks bool
		got    bool
	}{
		{"trunk_blocks", true, trees.Blocks(nav.Coord{X: 2, Y: 1})},
		{"canopy_does_not_block", false, trees.Blocks(nav.Coord{X: 2, Y: 0})},
		{"empty_does_not_block", false, trees.Blocks(nav.Coord{X: 0, Y: 3})},
		{"rock_blocks", true, rocks.Blocks(nav.Coord{X: 1, Y: 2})},
	}
	for _, c := range checks {
		t.Run(c.name, func(t *testing.T) {
			if c.got != c.blocks {
				t.Fatalf("blocks = %v, want %v", c.got, c.blocks)
			}
		})
	}

	occupied := trees.Occupied(nav.Coord{X: 2, Y: 1})
	want := map[nav.Coord]bool{
		{X: 2, Y: 1}: true, // trunk
		{X: 2, Y: 0}: true, // canopy above
		{X: 1, Y: 0}: true, // canopy left
		{X: 3, Y: 0}: true, // canopy right
	}
	if len(occupied) != len(want) {
		t.Fatalf("occupied = %v, want cells %v", occupied, want)
	}
	for _, c := range occupied {
		if !want[c] {
			t.Fatalf("unexpected occupied cell %v", c)
		}
	}
}

func TestLevelClearTile(t *testing.T) {
	lvl, err := parseLevel([]byte(testLevelJSON), testClasses())
	if err != nil {
		t.Fatalf("parse level: %v", err)
	}
	trees := lvl.Obstacles()[0]

	lvl.ClearTile(nav.Coord{X: 2, Y: 1})
	lvl.ClearTile(nav.Coord{X: 2, Y: 0})
	if trees.Blocks(nav.Coord{X: 2, Y: 1}) {
		t.Fatalf("trunk should be cleared")
	}
	if trees.HasTile(nav.Coord{X: 2, Y: 0}) {
		t.Fatalf("canopy should be cleared")
	}
	if !lvl.Ground().HasTile(nav.Coord{X: 2, Y: 1}) {
		t.Fatalf("clearing must never touch the ground layer")
	}
}

func TestLevelCoordinateConversions(t *testing.T) {
	lvl, err := parseLevel([]byte(testLevelJSON), testClasses())
	if err != nil {
		t.Fatalf("parse level: %v", err)
	}

	cases := []struct {
		x, y float64
		want nav.Coord
	}{
		{0, 0, nav.Coord{X: 0, Y: 0}},
		{31.9, 31.9, nav.Coord{X: 0, Y: 0}},
		{32, 32, nav.Coord{X: 1, Y: 1}},
		{100, 70, nav.Coord{X: 3, Y: 2}},
		{-1, -1, nav.Coord{X: -1, Y: -1}},
	}
	for _, c := range cases {
		if got := lvl.WorldToCell(c.x, c.y); got != c.want {
			t.Fatalf("WorldToCell(%v,%v) = %v, want %v", c.x, c.y, got, c.want)
		}
	}

	cx, cy := lvl.CellCenter(nav.Coord{X: 1, Y: 2})
	if cx != 48 || cy != 80 {
		t.Fatalf("CellCenter = %v,%v, want 48,80", cx, cy)
	}
	if got := lvl.WorldToCell(cx, cy); got != (nav.Coord{X: 1, Y: 2}) {
		t.Fatalf("center must project back to its own cell, got %v", got)
	}
}

func TestParseLevelErrors(t *testing.T) {
	cases := []struct {
		name string
		json string
	}{
		{"bad_dimensions", `{"name":"x","width":0,"height":4,"layers":[]}`},
		{"short_tiles", `{"name":"x","width":2,"height":2,"layers":[{"name":"g","kind":"ground","tiles":[1]}]}`},
		{"unknown_kind", `{"name":"x","width":1,"height":1,"layers":[{"name":"g","kind":"water","tiles":[1]}]}`},
		{"unknown_obstacle", `{"name":"x","width":1,"height":1,"layers":[{"name":"g","kind":"ground","tiles":[1]},{"name":"o","kind":"obstacle","obstacle":"ghost","tiles":[1]}]}`},
		{"no_ground", `{"name":"x","width":1,"height":1,"layers":[{"name":"o","kind":"obstacle","obstacle":"rock","tiles":[1]}]}`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := parseLevel([]byte(c.json), testClasses()); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}

func TestEmbeddedLevelBuildsGrid(t *testing.T) {
	obstacleSpec, err := prefabs.LoadObstaclesSpec()
	if err != nil {
		t.Fatalf("load obstacle spec: %v", err)
	}
	lvl, err := LoadLevel("meadow", obstacleSpec.Obstacles)
	if err != nil {
		t.Fatalf("load meadow: %v", err)
	}

	sources := make([]nav.ObstacleSource, 0, len(lvl.Obstacles()))
	for _, o := range lvl.Obstacles() {
		sources = append(sources, o)
	}
	grid := (&nav.Builder{}).Build(lvl.Ground(), sources)

	if !grid.Walkable(nav.Coord{X: lvl.SpawnX, Y: lvl.SpawnY}) {
		t.Fatalf("spawn cell must be walkable")
	}
	if grid.Walkable(nav.Coord{X: 5, Y: 5}) {
		t.Fatalf("tree trunk at (5,5) must block")
	}
	if !grid.Walkable(nav.Coord{X: 5, Y: 4}) {
		t.Fatalf("tree canopy at (5,4) must stay walkable")
	}
	if grid.Walkable(nav.Coord{X: 3, Y: 8}) {
		t.Fatalf("rock at (3,8) must block")
	}
}
