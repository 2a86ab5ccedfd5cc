// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// DownloadURL is where Model Editor installers are published.
const DownloadURL = "https://www.devexpress.com/ClientCenter/DownloadManager/"

const (
	ProjectNotFoundId Id = iota + 1
	VersionNotFoundId
	ModelEditorNotFoundId
	SolutionNotFoundId
	BuildFailedId
	ArtifactNotFoundId
	LaunchFailedId
	ConfigLoadFailedId
	UnexpectedFailureId
)

type (
	Id int

	MarkdownMsg string

	HttpLink string

	Issue struct {
		id       Id          // ID used to look the issue up
		mdMsg    MarkdownMsg // Markdown text that will be rendered
		extLinks []HttpLink  // external links that might be useful for the user
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue with a glamour style ("dark", "light", "auto",
// "notty" or a path to a JSON style file).
func (i *Issue) Render(stylePath string) (string, error) {
	md := string(i.mdMsg)
	if len(i.extLinks) > 0 {
		var b strings.Builder
		b.WriteString(md)
		b.WriteString("\n\n## See also\n")
		for _, link := range i.extLinks {
			b.WriteString("- <" + string(link) + ">\n")
		}
		md = b.String()
	}
	return render(md, stylePath)
}

var (
	render = glamour.Render

	projectNotFoundIssue = &Issue{
		id: ProjectNotFoundId,
		mdMsg: `
# No project file found!

No *.csproj or Directory.Build.props was found in the folder of the selected
model file or in any folder above it.

## Things you can try:
- Open a model file (*.xafml) that belongs to an XAF module or application project
- Check that the project file has not been moved or renamed`,
	}

	versionNotFoundIssue = &Issue{
		id: VersionNotFoundId,
		mdMsg: `
# DevExpress version not found!

The project file does not reference a DevExpress.ExpressApp package with a
numeric version, so the matching Model Editor cannot be chosen.

## Things you can try:
- Make sure the project has a reference such as:
~~~xml
<PackageReference Include="DevExpress.ExpressApp" Version="24.1.3" />
~~~
- If the version comes from an MSBuild property, set the editor path directly:
~~~
$ xafmodel open Model.xafml --editor "C:/path/to/DevExpress.ExpressApp.ModelEditor.v24.1.exe"
~~~`,
	}

	modelEditorNotFoundIssue = &Issue{
		id: ModelEditorNotFoundId,
		mdMsg: `
# Model Editor not installed!

The Model Editor for the project's DevExpress version was not found at the
expected location.

## Things you can try:
- Install the matching DevExpress version with the Model Editor component
- Point ` + "`model_editor.path`" + ` in the configuration to the executable
- Change ` + "`model_editor.install_root`" + ` if DevExpress is installed outside Program Files`,
		extLinks: []HttpLink{DownloadURL},
	}

	solutionNotFoundIssue = &Issue{
		id: SolutionNotFoundId,
		mdMsg: `
# No solution file found!

The build step needs a *.sln file in the folder of the model file or above it.

## Things you can try:
- Create a solution that contains the project:
~~~
$ dotnet new sln
$ dotnet sln add App.Module/App.Module.csproj
~~~
- Skip the build and open the last built output:
~~~
$ xafmodel open Model.xafml --no-build
~~~`,
	}

	buildFailedIssue = &Issue{
		id: BuildFailedId,
		mdMsg: `
# Build failed!

` + "`dotnet build`" + ` did not succeed, so the Model Editor was not started.

## Things you can try:
- Rerun with ` + "`--verbose`" + ` to see the compiler output
- Check that the .NET SDK is installed and ` + "`dotnet`" + ` is on your PATH
- Fix the build errors and try again`,
	}

	artifactNotFoundIssue = &Issue{
		id: ArtifactNotFoundId,
		mdMsg: `
# No DLL or EXE found!

The Model Editor needs the compiled module to load custom types, but no
matching assembly was found under bin/<configuration>/net*/.

## Things you can try:
- Build the solution first
- Set ` + "`launch.require_artifact: false`" + ` to open the model file without an assembly`,
	}

	launchFailedIssue = &Issue{
		id: LaunchFailedId,
		mdMsg: `
# Model Editor failed to start!

The executable could not be started or exited with an error.

## Things you can try:
- Start the Model Editor once by hand to check the installation
- Check the log file for the exact command line that was used`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file could not be read or does not match the schema.

## Things you can try:
- Show the path in use:
~~~
$ xafmodel config path
~~~
- Write a fresh default file:
~~~
$ xafmodel config init --force
~~~`,
	}

	unexpectedFailureIssue = &Issue{
		id: UnexpectedFailureId,
		mdMsg: `
# Something went wrong!

An unexpected error stopped the command. Rerun with ` + "`--verbose --log-file xafmodel.log`" + `
and include the log when reporting the problem.`,
	}

	issues = map[Id]*Issue{
		projectNotFoundIssue.Id():     projectNotFoundIssue,
		versionNotFoundIssue.Id():     versionNotFoundIssue,
		modelEditorNotFoundIssue.Id(): modelEditorNotFoundIssue,
		solutionNotFoundIssue.Id():    solutionNotFoundIssue,
		buildFailedIssue.Id():         buildFailedIssue,
		artifactNotFoundIssue.Id():    artifactNotFoundIssue,
		launchFailedIssue.Id():        launchFailedIssue,
		configLoadFailedIssue.Id():    configLoadFailedIssue,
		unexpectedFailureIssue.Id():   unexpectedFailureIssue,
	}
)

// Values returns every catalog entry ordered by Id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for i := range maps.Values(issues) {
		out = append(out, i)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
