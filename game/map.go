package game

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrInvalidLayout = errors.New("invalid layout")

// Layout is the static part of a game: walls plus the initial food, capsules and agent positions.
// Rows are read top to bottom, so the first text row has the highest Y.
type Layout struct {
	Name        string
	Width       int
	Height      int
	walls       []bool // Indexed by x*Height + y
	Food        []Position
	Capsules    []Position
	PacmanStart Position
	GhostStarts []Position
}

// ParseLayout reads a layout drawn with '%' walls, '.' food, 'o' capsules, 'P' Pacman and 'G' ghosts.
func ParseLayout(name, text string) (*Layout, error) {
	lines := strings.Split(strings.Trim(text, "\n"), "\n")
	if len(lines) == 0 || len(lines[0]) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrInvalidLayout, name)
	}

	width := len(lines[0])
	height := len(lines)
	l := &Layout{
		Name:   name,
		Width:  width,
		Height: height,
		walls:  make([]bool, width*height),
	}

	pacmen := 0
	for row, line := range lines {
		if len(line) != width {
			return nil, fmt.Errorf("%w: %s row %d has width %d, expected %d", ErrInvalidLayout, name, row, len(line), width)
		}
		y := height - 1 - row
		for x, glyph := range line {
			p := Position{X: x, Y: y}
			switch glyph {
			case '%':
				l.walls[x*height+y] = true
			case '.':
				l.Food = append(l.Food, p)
			case 'o':
				l.Capsules = append(l.Capsules, p)
			case 'P':
				l.PacmanStart = p
				pacmen++
			case 'G':
				l.GhostStarts = append(l.GhostStarts, p)
			case ' ':
			default:
				return nil, fmt.Errorf("%w: %s has unknown glyph %q at (%d,%d)", ErrInvalidLayout, name, glyph, x, y)
			}
		}
	}
	if pacmen != 1 {
		return nil, fmt.Errorf("%w: %s must have exactly one Pacman, found %d", ErrInvalidLayout, name, pacmen)
	}

	// Ghosts take agent indices in reading order
	sort.SliceStable(l.GhostStarts, func(i, j int) bool {
		a, b := l.GhostStarts[i], l.GhostStarts[j]
		if a.Y != b.Y {
			return a.Y > b.Y
		}
		return a.X < b.X
	})
	return l, nil
}

// IsWall reports whether p is a wall. Anything outside the grid counts as a wall.
func (l *Layout) IsWall(p Position) bool {
	if p.X < 0 || p.Y < 0 || p.X >= l.Width || p.Y >= l.Height {
		return true
	}
	return l.walls[p.X*l.Height+p.Y]
}

// Neighbours returns the moving actions from p that do not run into a wall.
func (l *Layout) Neighbours(p Position) []Action {
	actions := make([]Action, 0, len(Directions))
	for _, a := range Directions {
		if !l.IsWall(p.Move(a)) {
			actions = append(actions, a)
		}
	}
	return actions
}

func (l *Layout) NumGhosts() int {
	return len(l.GhostStarts)
}

var layouts = map[string]string{
	"tinyMaze": `
%%%%%%%
%    P%
% %%% %
%  %  %
%%   %%
%. %%%%
%%%%%%%`,
	"smallMaze": `
%%%%%%%%%%%%%%%%%%%%%%
% %%        % %      %
%    %%%%%% % %%%%%% %
%%%%%%     P  %      %
%    % %%%%%% %% %%%%%
% %%%% %         %   %
%        %%% %%%   % %
%%%%%%%%%%    %%%%%% %
%.         %%        %
%%%%%%%%%%%%%%%%%%%%%%`,
	"testClassic": `
%%%%%
% . %
%.G.%
% . %
%. .%
%   %
%  .%
%   %
%P .%
%%%%%`,
	"minimaxClassic": `
%%%%%%%%%
%.P    G%
% %.%G%%%
%G    %%%
%%%%%%%%%`,
	"smallClassic": `
%%%%%%%%%%%%%%%%%%%%
%......%G  G%......%
%.%%...%%  %%...%%.%
%.%o.%........%.o%.%
%.%%.%.%%%%%%.%.%%.%
%........P.........%
%%%%%%%%%%%%%%%%%%%%`,
	"smallGrid": `
%%%%%%%
% P   %
% %%% %
% %.  %
% %%% %
%.  G %
%%%%%%%`,
}

// LayoutByName parses one of the built-in layouts.
func LayoutByName(name string) (*Layout, error) {
	text, ok := layouts[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown layout %q", ErrInvalidLayout, name)
	}
	return ParseLayout(name, text)
}

func LayoutNames() []string {
	names := make([]string, 0, len(layouts))
	for name := range layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
