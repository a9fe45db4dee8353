// Package pathfind implements query-time path algorithms over a read-only
// graph capability.
//
// The main entry point is ExactDepthFinder, a bidirectional search that
// enumerates every path of exactly D edges between two nodes. The start side
// grows ceil(D/2) edges from the source and the end side grows floor(D/2)
// edges from the target; a path is assembled wherever the two sides meet,
// at a shared node when D is even and over a meeting edge when D is odd.
//
// Results come back as a Paths cursor. Nothing is computed until the first
// call to Next, and Close releases every open graph cursor whether or not
// the sequence was exhausted:
//
//	finder, err := pathfind.NewExactDepthFinder(pathfind.AllTypesAndDirections(g), 4)
//	if err != nil {
//		return err
//	}
//
//	paths := finder.FindAllPaths(ctx, "a", "b")
//	defer paths.Close()
//
//	for paths.Next() {
//		fmt.Println(paths.Path())
//	}
//
//	return paths.Err()
package pathfind
