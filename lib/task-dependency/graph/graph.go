// Package graph - представление графа зависимостей задач одного проекта
// в виде списков смежности и обход для проверки достижимости.
// Используется проверкой целостности рёбер и вычислением блокировки.
package graph

// Graph - направленный граф "задача -> её блокирующие задачи (depends on)".
type Graph struct {
	adjacency map[string][]string
}

func New() *Graph {
	return &Graph{
		adjacency: map[string][]string{},
	}
}

// AddEdge добавляет ребро "from зависит от to" без каких-либо проверок,
// валидация - забота вызывающего
func (g *Graph) AddEdge(from, to string) {
	g.adjacency[from] = append(g.adjacency[from], to)
}

func (g *Graph) HasEdge(from, to string) bool {
	for _, next := range g.adjacency[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Prerequisites - прямые зависимости задачи, в порядке добавления
func (g *Graph) Prerequisites(taskID string) []string {
	return g.adjacency[taskID]
}

// Reachable - достижима ли target из start по рёбрам зависимостей.
// Каждая вершина посещается не более одного раза, обход завершается
// и на графах с общими зависимостями.
func (g *Graph) Reachable(start, target string) bool {
	return g.findPath(start, target) != nil
}

// PathTo возвращает путь start -> ... -> target по рёбрам зависимостей,
// nil - если target недостижима. Используется для пояснения, через какие
// задачи замкнулся бы цикл.
func (g *Graph) PathTo(start, target string) []string {
	return g.findPath(start, target)
}

func (g *Graph) findPath(start, target string) []string {
	if start == target {
		return []string{start}
	}
	visited := map[string]bool{start: true}
	// parent по посещённым вершинам, чтобы восстановить путь
	parent := map[string]string{}
	queue := []string{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range g.adjacency[current] {
			if visited[next] {
				continue
			}
			visited[next] = true
			parent[next] = current
			if next == target {
				return restorePath(parent, start, target)
			}
			queue = append(queue, next)
		}
	}
	return nil
}

func restorePath(parent map[string]string, start, target string) []string {
	path := []string{target}
	for node := target; node != start; {
		node = parent[node]
		path = append([]string{node}, path...)
	}
	return path
}
