// Package filesystem walks project trees with ignore rules suited to game
// engine projects, where generated caches dwarf the source assets.
//
// Walk visits files and directories in lexical order, skipping hidden
// entries and the directories in DefaultIgnoreDirs:
//
//	err := filesystem.Walk("Assets", filesystem.WalkOptions{}, func(path string, d fs.DirEntry) error {
//	    fmt.Println(path)
//	    return nil
//	})
//
// FindFiles collects every file whose name ends with a suffix:
//
//	files, err := filesystem.FindFiles("Assets/Animators", ".controller.yml", filesystem.WalkOptions{})
package filesystem
