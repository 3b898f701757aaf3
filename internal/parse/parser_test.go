package parse

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSource(t *testing.T, source string) SourceUnit {
	t.Helper()

	unit, err := File(context.Background(), NewParser(), []byte(source), "test.ts")
	require.NoError(t, err)

	return unit
}

func TestFile_EntityClass(t *testing.T) {
	unit := parseSource(t, `
import { Entity, Column, PrimaryGeneratedColumn, ManyToOne } from "typeorm";

@Entity()
export class User {
  @PrimaryGeneratedColumn()
  id: number;

  @Column()
  name?: string;

  @ManyToOne(() => Profile, (profile) => profile.users)
  profile: Profile;
}
`)

	require.Len(t, unit.Classes, 1)

	cls := unit.Classes[0]
	assert.Equal(t, "User", cls.Name)
	require.Len(t, cls.Properties, 3)

	id := cls.Properties[0]
	assert.Equal(t, "id", id.Name)
	assert.Equal(t, "number", id.Type.String())
	assert.False(t, id.Optional)
	assert.Equal(t, []string{"PrimaryGeneratedColumn"}, id.Annotations)

	name := cls.Properties[1]
	assert.Equal(t, "name", name.Name)
	assert.True(t, name.Optional)
	assert.Equal(t, "string", name.Type.String())

	profile := cls.Properties[2]
	assert.Equal(t, "profile", profile.Name)
	assert.Equal(t, []string{"ManyToOne"}, profile.Annotations)
	assert.True(t, profile.Type.IsNamed())
	assert.Equal(t, "Profile", profile.Type.Name)
}

func TestFile_TypeStructuring(t *testing.T) {
	unit := parseSource(t, `
class Team {
  members: Employee[];
  backups: Array<Employee>;
  lead: Promise<Employee>;
  roster: Promise<Employee[]>;
  tags: string | null;
  meta: Record<string, string>;
}
`)

	require.Len(t, unit.Classes, 1)
	props := unit.Classes[0].Properties
	require.Len(t, props, 6)

	// T[] and Array<T> both structure as collections
	assert.Equal(t, TypeKindCollection, props[0].Type.Kind)
	assert.Equal(t, "Employee", props[0].Type.Leaf().Name)
	assert.Equal(t, "Employee[]", props[0].Type.String())

	assert.Equal(t, TypeKindCollection, props[1].Type.Kind)
	assert.Equal(t, "Array<Employee>", props[1].Type.String())

	// Promise<T> structures as deferred
	assert.Equal(t, TypeKindDeferred, props[2].Type.Kind)
	assert.Equal(t, "Employee", props[2].Type.Leaf().Name)

	// Wrappers nest
	assert.Equal(t, TypeKindDeferred, props[3].Type.Kind)
	assert.Equal(t, TypeKindCollection, props[3].Type.Elem.Kind)

	// Unions and foreign generics stay unstructured but keep their text
	assert.False(t, props[4].Type.IsNamed())
	assert.Equal(t, "string | null", props[4].Type.String())
	assert.False(t, props[5].Type.IsNamed())
	assert.Equal(t, "Record<string, string>", props[5].Type.String())
}

func TestFile_DecoratorForms(t *testing.T) {
	unit := parseSource(t, `
class Post {
  @Index
  slug: string;

  @orm.ManyToOne(() => User)
  author: User;

  @OneToMany(() => Comment, (c) => c.post, { eager: true })
  comments: Comment[];
}
`)

	require.Len(t, unit.Classes, 1)
	props := unit.Classes[0].Properties
	require.Len(t, props, 3)

	assert.Equal(t, []string{"Index"}, props[0].Annotations)
	assert.Equal(t, []string{"ManyToOne"}, props[1].Annotations)
	assert.Equal(t, []string{"OneToMany"}, props[2].Annotations)
}

func TestFile_SkipsMethodsAndBehavior(t *testing.T) {
	unit := parseSource(t, `
export class Account {
  balance: number;

  constructor(balance: number) {
    this.balance = balance;
  }

  deposit(amount: number): void {
    this.balance += amount;
  }

  get formatted(): string {
    return this.balance.toFixed(2);
  }
}

const helper = (x: number) => x * 2;
`)

	require.Len(t, unit.Classes, 1)
	require.Len(t, unit.Classes[0].Properties, 1)
	assert.Equal(t, "balance", unit.Classes[0].Properties[0].Name)
}

func TestFile_ClassForms(t *testing.T) {
	unit := parseSource(t, `
export default class {
  orphan: string;
}

export abstract class Base {
  id: number;
}

class Plain {
  value: string;
}
`)

	require.Len(t, unit.Classes, 3)

	// Anonymous default export has no resolvable name
	assert.False(t, unit.Classes[0].IsNamed())
	require.Len(t, unit.Classes[0].Properties, 1)

	assert.Equal(t, "Base", unit.Classes[1].Name)
	assert.Equal(t, "Plain", unit.Classes[2].Name)
}

func TestFile_Enums(t *testing.T) {
	unit := parseSource(t, `
export enum UserRole {
  Admin = "admin",
  Editor = "editor",
  Viewer,
}

enum Flags {
  A = 1,
  B = 2,
}
`)

	require.Len(t, unit.Enums, 2)

	role := unit.Enums[0]
	assert.Equal(t, "UserRole", role.Name)
	require.Len(t, role.Members, 3)
	assert.Equal(t, EnumMember{Name: "Admin", Value: `"admin"`}, role.Members[0])
	assert.Equal(t, EnumMember{Name: "Editor", Value: `"editor"`}, role.Members[1])
	assert.Equal(t, EnumMember{Name: "Viewer"}, role.Members[2])

	flags := unit.Enums[1]
	assert.Equal(t, "Flags", flags.Name)
	require.Len(t, flags.Members, 2)
	assert.Equal(t, EnumMember{Name: "A", Value: "1"}, flags.Members[0])
}

func TestFile_DeclarationOrder(t *testing.T) {
	unit := parseSource(t, `
enum First { A }

class Alpha { id: number; }

class Beta { id: number; }

enum Second { B }
`)

	require.Len(t, unit.Classes, 2)
	require.Len(t, unit.Enums, 2)
	assert.Equal(t, "Alpha", unit.Classes[0].Name)
	assert.Equal(t, "Beta", unit.Classes[1].Name)
	assert.Equal(t, "First", unit.Enums[0].Name)
	assert.Equal(t, "Second", unit.Enums[1].Name)
}

func TestFile_EmptySource(t *testing.T) {
	unit := parseSource(t, "")

	assert.Empty(t, unit.Classes)
	assert.Empty(t, unit.Enums)
	assert.Equal(t, "test.ts", unit.Path)
}
