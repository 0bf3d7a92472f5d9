// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
)

type Id int

const (
	DecodeFailedId Id = iota + 1
	EncodeFailedId
	InvalidConfigurationId
	ConfigLoadFailedId
	GenerationFailedId
	InputNotFoundId
	StorageFailedId
	InterruptedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
	extLinks []HttpLink // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also:\n"
		for _, link := range i.docLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
		for _, link := range i.extLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	decodeFailedIssue = &Issue{
		id: DecodeFailedId,
		mdMsg: `
# Failed to decode the input!

The input stream does not parse as the selected encoding, or its fields do
not match the expected message.

## Things you can try:
- Check that ` + "`--input_type`" + ` matches the file (PROTOTEXT, JSON or WIRE)
- Check that ` + "`--mode`" + ` matches its shape:
  SINGLE expects one record, MULTIPLE expects a ` + "`solutions`" + ` envelope
- A single record in MULTIPLE mode looks like this:
~~~
solutions {
  partner_id: "acme"
  solution_id: "wordpress"
  spec { fields { key: "name" value { string_value: "wordpress" } } }
}
~~~`,
		extLinks: []HttpLink{
			"https://protobuf.dev/reference/protobuf/textformat-spec/",
			"https://protobuf.dev/programming-guides/json/",
		},
	}

	encodeFailedIssue = &Issue{
		id: EncodeFailedId,
		mdMsg: `
# Failed to encode the output!

The generated packages could not be represented in the selected output
encoding, or the encoded bytes could not be written.

## Things you can try:
- PROTOTEXT and JSON require every string to be valid UTF-8;
  use ` + "`--output_type WIRE`" + ` for arbitrary bytes
- Check that the output destination accepts writes`,
	}

	invalidConfigurationIssue = &Issue{
		id: InvalidConfigurationId,
		mdMsg: `
# Invalid configuration!

One of the settings is not a recognized value. Names are matched exactly.

## Accepted values:
- ` + "`mode`" + `: SINGLE, MULTIPLE
- ` + "`input_type`" + ` and ` + "`output_type`" + `: PROTOTEXT, JSON, WIRE
- ` + "`input`" + ` and ` + "`output`" + `: empty for stdio, a file path, or ` + "`s3://bucket/key`" + `

## Things you can try:
~~~
$ batchautogen config show
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file could not be read or does not match the schema.

## Things you can try:
- Check the CUE syntax of your config file
- Print where the config file is looked up:
~~~
$ batchautogen config path
~~~

- Dump a valid starting point:
~~~
$ batchautogen config dump > config.cue
~~~`,
		extLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	generationFailedIssue = &Issue{
		id: GenerationFailedId,
		mdMsg: `
# Package generation failed!

The generator rejected one of the solutions. The whole batch was aborted
and no output was written.

## Things you can try:
- Look at the partner and solution IDs in the error to find the record
- Every record needs a ` + "`spec`" + `
- ` + "`deploymentTool`" + ` must be "DM" or "TERRAFORM"
- ` + "`name`" + `, ` + "`version`" + ` and ` + "`description`" + ` must be strings`,
	}

	inputNotFoundIssue = &Issue{
		id: InputNotFoundId,
		mdMsg: `
# Input not found!

The file or object named by ` + "`--input`" + ` does not exist.

## Things you can try:
- Check the path for typos
- Leave ` + "`--input`" + ` empty to read from stdin:
~~~
$ cat batch.textproto | batchautogen --output out.json --output_type JSON
~~~`,
	}

	storageFailedIssue = &Issue{
		id: StorageFailedId,
		mdMsg: `
# Failed to access the input or output location!

## Things you can try:
- For files, check directory permissions
- For ` + "`s3://`" + ` locations, check the AWS credentials and region in your environment
- Make sure the bucket exists and allows GetObject/PutObject`,
		extLinks: []HttpLink{"https://docs.aws.amazon.com/sdkref/latest/guide/standardized-credentials.html"},
	}

	interruptedIssue = &Issue{
		id: InterruptedId,
		mdMsg: `
# Interrupted!

The batch was canceled before it finished. No output was written.`,
	}

	issues = map[Id]*Issue{
		decodeFailedIssue.Id():         decodeFailedIssue,
		encodeFailedIssue.Id():         encodeFailedIssue,
		invalidConfigurationIssue.Id(): invalidConfigurationIssue,
		configLoadFailedIssue.Id():     configLoadFailedIssue,
		generationFailedIssue.Id():     generationFailedIssue,
		inputNotFoundIssue.Id():        inputNotFoundIssue,
		storageFailedIssue.Id():        storageFailedIssue,
		interruptedIssue.Id():          interruptedIssue,
	}
)

func Get(id Id) *Issue {
	return issues[id]
}
