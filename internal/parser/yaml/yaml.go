// Package yaml implements the declarative-configuration parser boundary: it
// turns a YAML document with a top-level "dagrs" mapping into the tasks of a
// runnable Dag (dag.WithYAML wraps them into one). The engine never parses;
// it only consumes the Dag built from the tasks this package produces.
package yaml

import (
	"os"

	goyaml "github.com/goccy/go-yaml"
	"github.com/go-viper/mapstructure/v2"

	"github.com/taskgraph/dagrs/internal/dagerr"
	"github.com/taskgraph/dagrs/internal/task"
)

// rootKey is the mandatory top-level key every declarative document must
// carry its task mapping under.
const rootKey = "dagrs"

// record is the structural shape of one entry under "dagrs" after the first,
// untyped YAML pass. mapstructure decodes the generic map[string]any blob
// goccy/go-yaml hands back into this, the same two-phase "generic map, then
// structural decode" idiom used for the rest of the ambient config layer.
type record struct {
	Name   string   `mapstructure:"name"`
	After  []string `mapstructure:"after"`
	Cmd    string   `mapstructure:"cmd"`
	Script string   `mapstructure:"script"`
}

// scriptBody returns whichever of Cmd/Script was populated, and whether
// either was.
func (r record) scriptBody() (string, bool) {
	if r.Cmd != "" {
		return r.Cmd, true
	}
	if r.Script != "" {
		return r.Script, true
	}
	return "", false
}

// Tasks parses document content shaped like:
//
//	dagrs:
//	  a:
//	    name: "Task 1"
//	    after: [b, c]
//	    cmd: echo a
//
// and returns the constructed tasks; their order in the slice is not
// guaranteed — callers pass the result straight to dag.WithTasks, which does not care
// about slice order, only about each Task's own predecessor ids.
func Tasks(content []byte) ([]*task.Task, error) {
	if len(content) == 0 {
		return nil, dagerr.Parser("file is empty")
	}

	var root map[string]any
	if err := goyaml.Unmarshal(content, &root); err != nil {
		return nil, dagerr.ParserWrap(err, "illegal yaml content: %v", err)
	}
	if root == nil {
		return nil, dagerr.Parser("file is empty")
	}

	rawTasks, ok := root[rootKey]
	if !ok {
		return nil, dagerr.Parser("file content does not start with %q", rootKey)
	}
	taskMap, ok := rawTasks.(map[string]any)
	if !ok {
		return nil, dagerr.Parser("%q must be a mapping of task key to task definition", rootKey)
	}

	records := make(map[string]record, len(taskMap))
	for key, raw := range taskMap {
		var rec record
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{Result: &rec, WeaklyTypedInput: true})
		if err != nil {
			return nil, dagerr.ParserWrap(err, "building decoder for task %q", key)
		}
		if err := dec.Decode(raw); err != nil {
			return nil, dagerr.ParserWrap(err, "decoding task %q: %v", key, err)
		}
		if rec.Name == "" {
			return nil, dagerr.Parser("task has no name field [%s]", key)
		}
		if _, hasScript := rec.scriptBody(); !hasScript {
			return nil, dagerr.Parser("'cmd'/'script' attribute is not defined [%s]", key)
		}
		records[key] = rec
	}

	tasks := make(map[string]*task.Task, len(records))
	for key, rec := range records {
		body, _ := rec.scriptBody()
		t := task.New(rec.Name)
		t.SetAction(task.ShellAction{Script: body})
		tasks[key] = t
	}

	for key, rec := range records {
		preds := make([]*task.Task, 0, len(rec.After))
		for _, afterKey := range rec.After {
			pred, ok := tasks[afterKey]
			if !ok {
				return nil, dagerr.Parser("task cannot find the specified predecessor [%s]", afterKey)
			}
			preds = append(preds, pred)
		}
		tasks[key].SetPredecessors(preds...)
	}

	out := make([]*task.Task, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t)
	}
	return out, nil
}

// TasksFromFile reads path and parses it with Tasks. A missing or unreadable
// file is reported distinctly from a malformed one.
func TasksFromFile(path string) ([]*task.Task, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, dagerr.ParserWrap(err, "file not found [%s]", path)
	}
	return Tasks(content)
}
