// Package todo owns the task store and its on-disk task file.
//
// A Store holds tasks in insertion order. Every task gets an id from the
// store's counter when it is added; ids only ever grow, and removing or
// clearing tasks never hands an id out again.
//
// The task file (todos.json) looks like:
//
//	{
//	  "schema_version": 1,
//	  "next_id": 4,
//	  "tasks": [
//	    {
//	      "id": 1,
//	      "name": "buy milk",
//	      "priority": 3,
//	      "created_at": "2024-01-01T00:00:00Z"
//	    }
//	  ]
//	}
//
// # Priority Range
//
//   - 1: Least urgent
//   - 5: Most urgent
//
// # Views
//
//   - List: insertion order
//   - Prioritize: priority descending, ties by ascending id
//   - Schedule: created_at ascending, ties by ascending id
//
// # File Format
//
// When writing task files, the package uses:
//   - 2-space indentation
//   - Trailing newline
//   - A temp file plus rename, so readers never see a half-written file
//
// Files written by the earlier single-file tool ({"todos": [...]} with
// Unix-second "created" stamps) are read and converted on load.
package todo
