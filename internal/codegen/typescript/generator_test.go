package typescript

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okra-platform/okragen/internal/output"
	"github.com/okra-platform/okragen/internal/schema"
)

func render(t *testing.T, g *Generator, src, namespace string) (string, []string) {
	t.Helper()
	s, err := schema.ParseSchema(src)
	require.NoError(t, err)

	tree, err := output.Materialize(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, g.Render(s, namespace, tree))

	files := tree.Files()
	require.Len(t, files, 1)
	data, err := os.ReadFile(filepath.Join(tree.Root(), files[0]))
	require.NoError(t, err)
	return string(data), files
}

func TestGenerator_Render(t *testing.T) {
	src := `
enum Status {
  ACTIVE
  INACTIVE
}

type User {
  id: ID!
  tags: [String!]
}

union Result = User
`
	got, files := render(t, NewGenerator(), src, "stellar")
	assert.Equal(t, []string{"stellar.ts"}, files)

	expected := `// Code generated by okragen. DO NOT EDIT.

export module stellar {
  export enum Status {
    Active = "ACTIVE",
    Inactive = "INACTIVE",
  }

  export function isStatus(value: any): value is Status {
    return Object.values(Status).includes(value);
  }

  export interface User {
    id: string;
    tags?: string[];
  }

  export type Result = User;
}
`
	assert.Equal(t, expected, got)
}

func TestGenerator_Render_Service(t *testing.T) {
	src := `
"""Greets people"""
service Greeter {
  greet(input: GreetRequest): GreetResponse
  ping: Boolean!
}

type GreetRequest { name: String! }
type GreetResponse { message: String! }
`
	got, _ := render(t, NewGenerator(), src, "demo")

	assert.Contains(t, got, "/** Greets people */\n  export interface Greeter {")
	assert.Contains(t, got, "greet(input: GreetRequest): Promise<GreetResponse>;")
	assert.Contains(t, got, "ping(): Promise<boolean>;")
	assert.Contains(t, got, "export abstract class GreeterClient implements Greeter {")
}

func TestGenerator_Render_ScalarsAndClasses(t *testing.T) {
	src := `
scalar DateTime
scalar Time

type Event {
  at: DateTime!
  seen: Time
}
`
	got, _ := render(t, NewGenerator().WithClasses(true), src, "")

	assert.NotContains(t, got, "export module")
	assert.Contains(t, got, "export type DateTime = string;")
	assert.NotContains(t, got, "export type Time")
	assert.Contains(t, got, "export class Event {")
	assert.Contains(t, got, "seen?: Date;")
}

func TestGenerator_IndexFileWithoutNamespace(t *testing.T) {
	_, files := render(t, NewGenerator(), `type A { id: ID! }`, "")
	assert.Equal(t, []string{"index.ts"}, files)
}
