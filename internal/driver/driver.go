// Package driver runs the per-domain generation state machine.
//
// A Driver owns one domain. Load is the reload cycle: it checks the output
// file and the stored baseline and regenerates only when needed. Generate
// and ForceGenerate are the manual entry points. A Registry holds one
// driver per domain and runs cycles across all of them.
package driver

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"github.com/simonhull/constgen/internal/baseline"
	"github.com/simonhull/constgen/internal/codewriter"
	"github.com/simonhull/constgen/internal/emit"
	"github.com/simonhull/constgen/internal/errors"
	"github.com/simonhull/constgen/internal/snapshot"
)

// Descriptor is the immutable configuration of one domain.
type Descriptor struct {
	Key       string // e.g. "layers"
	FileName  string // e.g. "_LAYERS", also the top-level class
	Generator string // e.g. "LayersGen"
	Shape     snapshot.Shape
	Retrieve  func() (snapshot.Snapshot, error)
	Layout    func(snapshot.Snapshot) ([]emit.Decl, error)
}

// Options are the two switches of the reload decision table.
type Options struct {
	RegenerateOnMissing bool
	UpdateOnReload      bool
}

// Deps are the collaborators shared by every driver.
type Deps struct {
	Store     baseline.Store
	FS        OutputFS
	Dialect   emit.Dialect
	Logger    *zap.SugaredLogger
	OutputDir string
}

// Driver runs generation cycles for one domain. Cycles on one driver are
// serialized.
type Driver struct {
	desc Descriptor
	deps Deps
	opts Options
	log  *zap.SugaredLogger

	mu    sync.Mutex
	state State
}

// New creates a driver in the Uninitialized state.
func New(desc Descriptor, deps Deps, opts Options) *Driver {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	d := &Driver{desc: desc, deps: deps, opts: opts}
	d.log = logger.With("domain", desc.Key, "file", d.Path())
	return d
}

// Descriptor returns the domain configuration.
func (d *Driver) Descriptor() Descriptor { return d.desc }

// Path returns the output file path.
func (d *Driver) Path() string {
	return filepath.Join(d.deps.OutputDir, d.desc.FileName+d.deps.Dialect.Extension())
}

// State returns the state reached by the last cycle.
func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *Driver) setState(s State) {
	d.state = s
	d.log.Debugw("state", "state", s.String())
}

func (d *Driver) result(action Action) Result {
	return Result{Domain: d.desc.Key, Path: d.Path(), State: d.state, Action: action}
}

// Load runs the reload cycle.
//
//	file missing, regenerate on missing            → Generate
//	file missing, update on reload only            → warning ErrUpdateOnMissing
//	file missing, both off                         → nothing
//	file present, update on reload, source changed → Generate
//	file present otherwise                         → nothing
//
// Output settings that differ from the fingerprint stored with the baseline
// count as a source change. A baseline that cannot be loaded stops the
// cycle in Uninitialized.
func (d *Driver) Load() (Result, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	old, hasBaseline, err := d.deps.Store.Load(d.desc.Key)
	if err != nil {
		d.setState(Uninitialized)
		d.log.Errorw("baseline load failed", "error", err)
		return d.result(ActionNone), errors.Persistence(err, "%s: load baseline", d.desc.Key)
	}

	d.setState(Checking)
	exists, err := d.deps.FS.Exists(d.Path())
	if err != nil {
		d.setState(Done)
		return d.result(ActionNone), errors.Write(err, "%s: check %s", d.desc.Key, d.Path())
	}

	if !exists {
		d.setState(Missing)
		switch {
		case d.opts.RegenerateOnMissing:
			return d.generate(ActionGenerated)
		case d.opts.UpdateOnReload:
			d.setState(Done)
			res := d.result(ActionNone)
			res.Warning = errors.Mark(
				errors.Newf("%s: %s is missing and regenerate on missing is off", d.desc.Key, d.Path()),
				errors.ErrUpdateOnMissing)
			d.log.Warnw("cannot update a missing file", "state", d.state.String())
			return res, nil
		default:
			d.setState(Done)
			return d.result(ActionNone), nil
		}
	}

	d.setState(Present)
	if !d.opts.UpdateOnReload {
		d.setState(Done)
		return d.result(ActionNone), nil
	}

	current, err := d.retrieve()
	if err != nil {
		d.setState(Done)
		return d.result(ActionNone), err
	}
	prev := old.Snapshot
	switch {
	case !hasBaseline:
		prev = nil
	case prev != nil && prev.Shape() != d.desc.Shape:
		d.log.Warnw("baseline has the wrong shape, regenerating", "baseline_shape", prev.Shape().String())
		prev = nil
	}
	changed := snapshot.HasChanged(prev, current)
	if !changed && old.Fingerprint != "" {
		fp, err := d.fingerprint()
		if err != nil {
			d.setState(Done)
			return d.result(ActionNone), err
		}
		if fp != old.Fingerprint {
			d.log.Infow("output settings changed, regenerating")
			changed = true
		}
	}
	if !changed {
		d.setState(Done)
		d.log.Debugw("up to date")
		return d.result(ActionUpToDate), nil
	}
	return d.write(current, ActionGenerated)
}

// Generate retrieves, renders and writes the file unconditionally, then
// stores the snapshot as the new baseline. Any failure before the write
// leaves both file and baseline untouched.
func (d *Driver) Generate() (Result, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.generate(ActionGenerated)
}

// ForceGenerate deletes the file and, when regenerate on missing is on,
// generates it again. With the option off the file stays absent and the
// baseline is left as it was. An absent file is a no-op reported as the
// warning ErrForceGenerateOnAbsent.
func (d *Driver) ForceGenerate() (Result, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.setState(Checking)
	exists, err := d.deps.FS.Exists(d.Path())
	if err != nil {
		d.setState(Done)
		return d.result(ActionNone), errors.Write(err, "%s: check %s", d.desc.Key, d.Path())
	}
	if !exists {
		d.setState(Done)
		res := d.result(ActionNone)
		res.Warning = errors.Mark(
			errors.Newf("%s: %s does not exist, nothing to force", d.desc.Key, d.Path()),
			errors.ErrForceGenerateOnAbsent)
		d.log.Warnw("force generate on absent file")
		return res, nil
	}

	if err := d.deps.FS.Delete(d.Path()); err != nil {
		d.setState(Done)
		return d.result(ActionNone), errors.Write(err, "%s: delete %s", d.desc.Key, d.Path())
	}
	d.log.Infow("deleted")
	d.setState(Missing)

	if !d.opts.RegenerateOnMissing {
		d.setState(Done)
		return d.result(ActionDeleted), nil
	}
	return d.generate(ActionRegenerated)
}

// Render retrieves the current snapshot and renders the file contents
// without touching the output file or the baseline.
func (d *Driver) Render() ([]byte, snapshot.Snapshot, error) {
	snap, err := d.retrieve()
	if err != nil {
		return nil, nil, err
	}
	content, err := d.render(snap)
	if err != nil {
		return nil, nil, err
	}
	return content, snap, nil
}

func (d *Driver) generate(action Action) (Result, error) {
	snap, err := d.retrieve()
	if err != nil {
		d.setState(Done)
		return d.result(ActionNone), err
	}
	return d.write(snap, action)
}

// write renders snap, writes the file and then persists the baseline.
func (d *Driver) write(snap snapshot.Snapshot, action Action) (Result, error) {
	content, err := d.render(snap)
	if err != nil {
		d.setState(Done)
		d.log.Errorw("render failed", "error", err)
		return d.result(ActionNone), err
	}
	fp, err := d.fingerprint()
	if err != nil {
		d.setState(Done)
		return d.result(ActionNone), err
	}

	if err := d.deps.FS.WriteAllText(d.Path(), string(content)); err != nil {
		d.setState(Done)
		d.log.Errorw("write failed", "error", err)
		return d.result(ActionNone), errors.Write(err, "%s: write %s", d.desc.Key, d.Path())
	}

	entry := baseline.Entry{Snapshot: snapshot.Clone(snap), Fingerprint: fp}
	if err := d.deps.Store.Save(d.desc.Key, entry); err != nil {
		d.setState(Done)
		d.log.Errorw("baseline save failed", "error", err)
		return d.result(action), errors.Persistence(err, "%s: save baseline", d.desc.Key)
	}
	d.deps.Store.MarkDirty()

	d.setState(Done)
	d.log.Infow("generated", "bytes", len(content), "entries", snap.Len())
	return d.result(action), nil
}

func (d *Driver) retrieve() (snapshot.Snapshot, error) {
	snap, err := d.desc.Retrieve()
	if err != nil {
		d.log.Errorw("retrieval failed", "error", err)
		if !errors.Is(err, errors.ErrRetrieval) {
			err = errors.Retrieval(err, "%s", d.desc.Key)
		}
		return nil, err
	}
	if snap == nil {
		return nil, errors.Mark(errors.Newf("%s: source returned no snapshot", d.desc.Key), errors.ErrRetrieval)
	}
	if snap.Shape() != d.desc.Shape {
		return nil, errors.Mark(
			errors.Newf("%s: source returned a %s snapshot, want %s", d.desc.Key, snap.Shape(), d.desc.Shape),
			errors.ErrRetrieval)
	}
	return snap, nil
}

// render lays out and resolves every identifier before anything is written,
// so a collision produces no output at all.
func (d *Driver) render(snap snapshot.Snapshot) ([]byte, error) {
	decls, err := d.desc.Layout(snap)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: layout", d.desc.Key)
	}
	if err := emit.Resolve(d.deps.Dialect, d.desc.FileName, decls); err != nil {
		return nil, err
	}

	w := codewriter.New()
	err = emit.Write(w, d.deps.Dialect, d.file(decls))
	if err != nil {
		return nil, errors.Wrapf(err, "%s: emit", d.desc.Key)
	}
	return w.Bytes(), nil
}

func (d *Driver) file(decls []emit.Decl) emit.File {
	return emit.File{
		Generator: d.desc.Generator,
		Domain:    d.desc.Key,
		Class:     d.desc.FileName,
		Decls:     decls,
	}
}

// fingerprint digests the dialect settings that shape a file besides its
// snapshot: target language, namespace, imports, templates and the
// rendered banner.
func (d *Driver) fingerprint() (string, error) {
	dl := d.deps.Dialect
	banner, err := dl.Banner(emit.BannerDataFor(d.file(nil)))
	if err != nil {
		return "", errors.Wrapf(err, "%s: banner", d.desc.Key)
	}

	h := xxhash.New()
	parts := []string{
		dl.Extension(), dl.Namespace(), dl.NamespaceTemplate(), dl.ClassTemplate(),
		dl.IntConstTemplate(), dl.StringConstTemplate(), string(banner),
	}
	for _, part := range append(parts, dl.Imports()...) {
		_, _ = h.WriteString(part)
		_, _ = h.Write([]byte{0})
	}
	return fmt.Sprintf("%016x", h.Sum64()), nil
}
