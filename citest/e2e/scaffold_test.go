package e2e_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ArielEspinoza07/console-forge/citest/testutil"
)

var _ = Describe("Scaffolding", func() {
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

	Describe("init:file", func() {
		It("should create a runnable example command", func() {
			res := ws.Run(ctx, "init:file")
			Expect(res.Code).To(Equal(0), res.Stderr)
			Expect(res.Stdout).To(ContainSubstring("Configuration file created successfully"))
			Expect(ws.Exists("console-forge.yaml")).To(BeTrue())

			res = ws.Run(ctx, "greet", "Grace", "--yell")
			Expect(res.Code).To(Equal(0), res.Stderr)
			Expect(res.Stdout).To(Equal("HELLO, GRACE!\n"))
		})

		It("should refuse to overwrite without --force", func() {
			Expect(ws.Run(ctx, "init:file").Code).To(Equal(0))

			res := ws.Run(ctx, "init:file")
			Expect(res.Code).To(Equal(1))
			Expect(res.Stdout).To(ContainSubstring("already exists"))

			res = ws.Run(ctx, "init:file", "--force")
			Expect(res.Code).To(Equal(0))
		})
	})

	Describe("init:dir", func() {
		It("should create a directory with an example file", func() {
			res := ws.Run(ctx, "init:dir")
			Expect(res.Code).To(Equal(0), res.Stderr)
			Expect(ws.Exists("console-forge/example.yaml")).To(BeTrue())

			res = ws.Run(ctx, "list")
			Expect(res.Code).To(Equal(0), res.Stderr)
			Expect(res.Stdout).To(ContainSubstring("greet-dir"))
		})

		It("should live alongside init:file without name clashes", func() {
			Expect(ws.Run(ctx, "init:file").Code).To(Equal(0))
			Expect(ws.Run(ctx, "init:dir").Code).To(Equal(0))

			res := ws.Run(ctx, "validate")
			Expect(res.Code).To(Equal(0), res.Stdout)
			Expect(res.Stdout).To(ContainSubstring("2 command(s) defined"))
		})
	})
})
