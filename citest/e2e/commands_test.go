package e2e_test

import (
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ArielEspinoza07/console-forge/citest/testutil"
)

var _ = Describe("Project Commands", func() {
	var ws *testutil.Workspace

	BeforeEach(func() {
		var err error
		ws, err = testutil.NewWorkspace()
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if ws != nil {
			ws.Cleanup()
		}
	})

	Describe("Catalog handlers", func() {
		BeforeEach(func() {
			Expect(ws.WriteConfig("math.jsonc", `// arithmetic helpers
{
  "commands": [
    {
      "name": "sum",
      "description": "Add numbers",
      "args": [{"name": "numbers", "array": true, "required": true}],
      "handler": "e2e.sum" // registered function
    },
  ]
}`)).To(Succeed())
			Expect(ws.WriteConfig("text/join.yaml", `
- name: count
  args:
    - name: items
      array: true
  handler: e2e.Tally
- name: join
  args:
    - name: items
      array: true
  opts:
    - name: sep
      shortcut: s
      accept_value: true
      default: ", "
  handler:
    type: e2e.Tally
    method: Join
`)).To(Succeed())
		})

		It("should invoke a registered function", func() {
			res := ws.Run(ctx, "sum", "1", "2", "39")
			Expect(res.Code).To(Equal(0), res.Stderr)
			Expect(res.Stdout).To(Equal("42\n"))
		})

		It("should reject values that do not coerce", func() {
			res := ws.Run(ctx, "sum", "1", "two")
			Expect(res.Code).To(Equal(1))
			Expect(res.Stderr).To(ContainSubstring("numbers"))
		})

		It("should invoke a catalog type", func() {
			res := ws.Run(ctx, "count", "a", "b", "c")
			Expect(res.Code).To(Equal(0), res.Stderr)
			Expect(res.Stdout).To(Equal("3\n"))
		})

		It("should invoke a named method with option defaults", func() {
			res := ws.Run(ctx, "join", "a", "b")
			Expect(res.Code).To(Equal(0), res.Stderr)
			Expect(res.Stdout).To(Equal("a, b\n"))

			res = ws.Run(ctx, "join", "a", "b", "-s", "+")
			Expect(res.Code).To(Equal(0), res.Stderr)
			Expect(res.Stdout).To(Equal("a+b\n"))
		})

		It("should list commands from every file", func() {
			res := ws.Run(ctx, "list")
			Expect(res.Code).To(Equal(0), res.Stderr)
			Expect(res.Stdout).To(ContainSubstring("sum"))
			Expect(res.Stdout).To(ContainSubstring("count"))
			Expect(res.Stdout).To(ContainSubstring("join"))
		})
	})

	Describe("Script handlers", func() {
		It("should expose arguments and options to the script", func() {
			Expect(ws.WriteConfig("release.yaml", `
name: release
args:
  - name: version
    required: true
opts:
  - name: dry-run
    shortcut: "n"
handler:
  script: |
    if [ -n "$DRY_RUN" ]; then
      echo "would release $VERSION"
      exit 0
    fi
    echo "released $1"
`)).To(Succeed())

			res := ws.Run(ctx, "release", "1.2.0", "-n")
			Expect(res.Code).To(Equal(0), res.Stderr)
			Expect(res.Stdout).To(Equal("would release 1.2.0\n"))

			res = ws.Run(ctx, "release", "1.2.0")
			Expect(res.Code).To(Equal(0), res.Stderr)
			Expect(res.Stdout).To(Equal("released 1.2.0\n"))
		})

		It("should propagate the script exit status", func() {
			Expect(ws.WriteConfig("fail.json", `{"name": "fail", "handler": {"script": "exit 7"}}`)).To(Succeed())
			Expect(ws.Run(ctx, "fail").Code).To(Equal(7))
		})

		It("should interpolate environment variables in definitions", func() {
			Expect(os.Setenv("FORGE_E2E_GREETING", "Howdy")).To(Succeed())
			DeferCleanup(os.Unsetenv, "FORGE_E2E_GREETING")

			Expect(ws.WriteConfig("hello.yaml", `
name: hello
description: "{env:FORGE_E2E_GREETING} there"
handler:
  script: echo "{env:FORGE_E2E_GREETING}"
`)).To(Succeed())

			res := ws.Run(ctx, "hello")
			Expect(res.Code).To(Equal(0), res.Stderr)
			Expect(res.Stdout).To(Equal("Howdy\n"))

			res = ws.Run(ctx, "list")
			Expect(res.Stdout).To(ContainSubstring("Howdy there"))
		})
	})

	Describe("Validation", func() {
		It("should report every problem at once", func() {
			Expect(ws.WriteConfig("a.yaml", "name: deploy\n")).To(Succeed())
			Expect(ws.WriteConfig("b.yaml", "name: deploy\n")).To(Succeed())
			Expect(ws.WriteConfig("c.json", `{"name": "broken", "handler": "e2e.missing"}`)).To(Succeed())
			Expect(ws.WriteConfig("d.yaml", "opts: []\n")).To(Succeed())

			res := ws.Run(ctx, "validate")
			Expect(res.Code).To(Equal(1))
			Expect(res.Stdout).To(ContainSubstring("3 problem(s)"))
			Expect(res.Stdout).To(ContainSubstring("first defined in"))
			Expect(res.Stdout).To(ContainSubstring("e2e.missing"))
		})

		It("should keep built-in commands usable when loading fails", func() {
			Expect(ws.WriteConfig("bad.yaml", "name: [\n")).To(Succeed())

			res := ws.Run(ctx, "deploy")
			Expect(res.Code).To(Equal(1))
			Expect(res.Stderr).To(ContainSubstring("could not be loaded"))

			res = ws.Run(ctx, "init:dir")
			Expect(res.Code).To(Equal(0), res.Stderr)
		})
	})
})
