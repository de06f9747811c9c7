package installcmder_test

import (
	"log/slog"
	"os"
	"path/filepath"

	charmlog "github.com/charmbracelet/log"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	satchelcmder "github.com/papercomputeco/satchel/cmd/satchel"
	installcmder "github.com/papercomputeco/satchel/cmd/satchel/install"
)

var _ = Describe("NewInstallCmd", func() {
	It("creates a command with the correct use string", func() {
		cmd := installcmder.NewInstallCmd()
		Expect(cmd.Use).To(Equal("install"))
	})

	It("rejects positional arguments", func() {
		cmd := installcmder.NewInstallCmd()
		err := cmd.Args(cmd, []string{"extra"})
		Expect(err).To(HaveOccurred())
	})

	It("defaults the source flag to the current directory", func() {
		cmd := installcmder.NewInstallCmd()
		f := cmd.Flags().Lookup("source")
		Expect(f).NotTo(BeNil())
		Expect(f.DefValue).To(Equal("."))
	})

	It("leaves the conflict flag unset by default", func() {
		cmd := installcmder.NewInstallCmd()
		f := cmd.Flags().Lookup("conflict")
		Expect(f).NotTo(BeNil())
		Expect(f.DefValue).To(Equal(""))
	})

	It("has dry-run and watch flags", func() {
		cmd := installcmder.NewInstallCmd()
		Expect(cmd.Flags().Lookup("dry-run")).NotTo(BeNil())
		Expect(cmd.Flags().Lookup("watch")).NotTo(BeNil())
	})
})

var _ = Describe("Logging format", func() {
	It("maps each configured format onto its handler", func() {
		Expect(installcmder.NewLoggerForFormat(false, "pretty").Handler()).
			To(BeAssignableToTypeOf(&charmlog.Logger{}))
		Expect(installcmder.NewLoggerForFormat(false, "json").Handler()).
			To(BeAssignableToTypeOf(&slog.JSONHandler{}))
		Expect(installcmder.NewLoggerForFormat(false, "text").Handler()).
			To(BeAssignableToTypeOf(&slog.TextHandler{}))
	})

	It("falls back to pretty for an unknown format", func() {
		Expect(installcmder.NewLoggerForFormat(true, "").Handler()).
			To(BeAssignableToTypeOf(&charmlog.Logger{}))
	})
})

var _ = Describe("Install command execution", func() {
	var (
		source string
		target string
	)

	BeforeEach(func() {
		source = GinkgoT().TempDir()
		target = GinkgoT().TempDir()

		Expect(os.MkdirAll(filepath.Join(source, "skills"), 0o755)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(source, "skills", "review.md"), []byte("# Review\n"), 0o644)).To(Succeed())
	})

	execute := func(args ...string) error {
		cmd := satchelcmder.NewSatchelCmd()
		cmd.SetArgs(args)
		return cmd.Execute()
	}

	It("installs the toolkit into the target directory", func() {
		err := execute("install", "--source", source, "--target", target, "--conflict", "overwrite")
		Expect(err).NotTo(HaveOccurred())

		Expect(filepath.Join(target, "skills", "review.md")).To(BeAnExistingFile())
		Expect(filepath.Join(target, "satchel-receipt.json")).To(BeAnExistingFile())
	})

	It("fails for a missing source tree", func() {
		err := execute("install", "--source", filepath.Join(source, "nope"), "--target", target)
		Expect(err).To(HaveOccurred())
	})

	It("rejects an invalid conflict policy", func() {
		err := execute("install", "--source", source, "--target", target, "--conflict", "ask-twice")
		Expect(err).To(HaveOccurred())
	})

	It("runs with a layered logging format", func() {
		GinkgoT().Setenv("SATCHEL_LOGGING_FORMAT", "json")

		err := execute("install", "--source", source, "--target", target, "--conflict", "overwrite")
		Expect(err).NotTo(HaveOccurred())
	})

	It("writes nothing in dry-run mode", func() {
		err := execute("install", "--source", source, "--target", target, "--dry-run")
		Expect(err).NotTo(HaveOccurred())

		entries, err := os.ReadDir(target)
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(BeEmpty())
	})

	It("fails the run when the hook configuration is invalid", func() {
		Expect(os.MkdirAll(filepath.Join(source, "hooks"), 0o755)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(source, "hooks", "hooks.json"), []byte("{not json"), 0o644)).To(Succeed())

		err := execute("install", "--source", source, "--target", target, "--conflict", "overwrite")
		Expect(err).To(HaveOccurred())

		// The independent copy steps still ran.
		Expect(filepath.Join(target, "skills", "review.md")).To(BeAnExistingFile())
	})
})
