// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	CargoNotFoundId Id = iota + 1
	ToolchainNotInstalledId
	TargetNotInstalledId
	CrateManifestNotFoundId
	FeatureContractViolationId
	MatrixManifestParseErrorId
	SetupHookFailedId
	WorkspaceSetupFailedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to look up the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // documentation links shown under "See also"
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 {
		extraMd += "\n\n## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	cargoNotFoundIssue = &Issue{
		id: CargoNotFoundId,
		mdMsg: `
# cargo not found!

crateci drives the Rust toolchain through cargo, but no cargo binary was
found in your PATH.

## Things you can try:
- Install the Rust toolchain via rustup:
~~~
$ curl --proto '=https' --tlsv1.2 -sSf https://sh.rustup.rs | sh
~~~

- Or point crateci at an existing binary in your config:
~~~cue
cargo_path: "/opt/rust/bin/cargo"
~~~`,
		docLinks: []HttpLink{"https://rustup.rs"},
	}

	toolchainNotInstalledIssue = &Issue{
		id: ToolchainNotInstalledId,
		mdMsg: `
# Toolchain not installed!

The matrix crosses stable, beta, and nightly, but at least one of those
channels is not installed.

## Things you can try:
- Install the missing channel:
~~~
$ rustup toolchain install beta
$ rustup toolchain install nightly
~~~

- Or trim the matrix in your crateci.cue:
~~~cue
matrix: toolchains: ["stable"]
~~~`,
	}

	targetNotInstalledIssue = &Issue{
		id: TargetNotInstalledId,
		mdMsg: `
# Freestanding target not installed!

The freestanding gate cross-compiles the crate, which needs the target's
core/alloc components installed for the stable toolchain.

## Things you can try:
- Add the target:
~~~
$ rustup target add thumbv6m-none-eabi
~~~

- Or have crateci do it every run via a setup hook:
~~~cue
hooks: setup: "rustup target add thumbv6m-none-eabi"
~~~`,
	}

	crateManifestNotFoundIssue = &Issue{
		id: CrateManifestNotFoundId,
		mdMsg: `
# No Cargo.toml found!

The directory being verified does not look like a crate root.

## Things you can try:
- Run crateci from the crate root:
~~~
$ cd /path/to/your/crate
$ crateci check
~~~

- Or pass the crate directory explicitly:
~~~
$ crateci check /path/to/your/crate
~~~`,
	}

	featureContractViolationIssue = &Issue{
		id: FeatureContractViolationId,
		mdMsg: `
# Feature contract violation!

The matrix verifies three feature configurations (default, none, alloc),
which requires the crate to declare them.

## The crate must declare:
- a non-empty ` + "`default`" + ` feature set, so disabling defaults is a
  distinct mode
- an ` + "`alloc`" + ` opt-in feature, not included in the default set

## Example Cargo.toml:
~~~toml
[features]
default = ["std"]
std = []
alloc = []
~~~`,
	}

	matrixManifestParseErrorIssue = &Issue{
		id: MatrixManifestParseErrorId,
		mdMsg: `
# Failed to parse crateci.cue!

Your matrix manifest contains syntax errors or invalid values.

## Common issues:
- Invalid CUE syntax (missing quotes, braces)
- A toolchain, platform, or feature set outside the allowed values
- An empty dimension list

## Example of a valid manifest:
~~~cue
matrix: {
	toolchains:   ["stable", "beta", "nightly"]
	platforms:    ["linux", "windows"]
	feature_sets: ["default", "none", "alloc"]
}
freestanding: [{triple: "thumbv6m-none-eabi"}]
~~~`,
	}

	setupHookFailedIssue = &Issue{
		id: SetupHookFailedId,
		mdMsg: `
# Setup hook failed!

The manifest's setup hook exited non-zero, so no gate was run.

## Things you can try:
- Run the hook's commands manually to see the full failure
- Check that referenced tools (rustup etc.) are installed
- Remove the hook if it is no longer needed:
~~~cue
hooks: setup: ""
~~~`,
	}

	workspaceSetupFailedIssue = &Issue{
		id: WorkspaceSetupFailedId,
		mdMsg: `
# Workspace setup failed!

Each matrix cell builds into its own isolated target directory under
target/crateci/, and creating one failed.

## Common causes:
- The crate directory is read-only
- The disk is full

## Things you can try:
- Check permissions on the crate's target/ directory
- Remove stale workspaces:
~~~
$ rm -rf target/crateci
~~~`,
	}

	issues = map[Id]*Issue{
		cargoNotFoundIssue.Id():            cargoNotFoundIssue,
		toolchainNotInstalledIssue.Id():    toolchainNotInstalledIssue,
		targetNotInstalledIssue.Id():       targetNotInstalledIssue,
		crateManifestNotFoundIssue.Id():    crateManifestNotFoundIssue,
		featureContractViolationIssue.Id(): featureContractViolationIssue,
		matrixManifestParseErrorIssue.Id(): matrixManifestParseErrorIssue,
		setupHookFailedIssue.Id():          setupHookFailedIssue,
		workspaceSetupFailedIssue.Id():     workspaceSetupFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
