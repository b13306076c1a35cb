package graph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGraph(t *testing.T) {
	t.Run(`достижимость по цепочке рёбер`, func(t *testing.T) {
		g := New()
		g.AddEdge("x", "y")
		g.AddEdge("y", "z")

		require.True(t, g.Reachable("x", "z"))
		require.True(t, g.Reachable("x", "y"))
		require.False(t, g.Reachable("z", "x"))
		require.False(t, g.Reachable("y", "x"))
	})

	t.Run(`вершина достижима из самой себя`, func(t *testing.T) {
		g := New()
		require.True(t, g.Reachable("x", "x"))
	})

	t.Run(`недостижимость в пустом графе`, func(t *testing.T) {
		g := New()
		require.False(t, g.Reachable("x", "y"))
	})

	t.Run(`обход завершается на графе с общими зависимостями`, func(t *testing.T) {
		// ромб: x -> a -> z, x -> b -> z
		g := New()
		g.AddEdge("x", "a")
		g.AddEdge("x", "b")
		g.AddEdge("a", "z")
		g.AddEdge("b", "z")

		require.True(t, g.Reachable("x", "z"))
		require.False(t, g.Reachable("z", "x"))
	})

	t.Run(`PathTo восстанавливает путь`, func(t *testing.T) {
		g := New()
		g.AddEdge("x", "y")
		g.AddEdge("y", "z")

		path := g.PathTo("x", "z")
		require.Equal(t, []string{"x", "y", "z"}, path)

		require.Nil(t, g.PathTo("z", "x"))
	})

	t.Run(`HasEdge учитывает только прямые рёбра`, func(t *testing.T) {
		g := New()
		g.AddEdge("x", "y")
		g.AddEdge("y", "z")

		require.True(t, g.HasEdge("x", "y"))
		require.False(t, g.HasEdge("x", "z"))
		require.False(t, g.HasEdge("y", "x"))
	})

	t.Run(`Prerequisites сохраняет порядок добавления`, func(t *testing.T) {
		g := New()
		g.AddEdge("x", "b")
		g.AddEdge("x", "a")

		require.Equal(t, []string{"b", "a"}, g.Prerequisites("x"))
		require.Empty(t, g.Prerequisites("a"))
	})
}
