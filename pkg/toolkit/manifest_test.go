package toolkit_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/satchel/pkg/toolkit"
)

var _ = Describe("LoadManifest", func() {
	var sourceDir string

	BeforeEach(func() {
		sourceDir = GinkgoT().TempDir()
	})

	It("returns defaults when no toolkit.toml exists", func() {
		m, err := toolkit.LoadManifest(sourceDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(m.Components.SkillsDir).To(Equal("skills"))
		Expect(m.Components.CommandsDir).To(Equal("commands"))
		Expect(m.Components.AgentsDir).To(Equal("agents"))
		Expect(m.Components.HooksFile).To(Equal(filepath.Join("hooks", "hooks.json")))
		Expect(m.Components.MemoryFile).To(Equal("CLAUDE.md"))
		Expect(m.Uninstall.ScriptName).To(Equal("uninstall.sh"))
	})

	It("fails when the source directory is missing", func() {
		_, err := toolkit.LoadManifest(filepath.Join(sourceDir, "absent"))
		Expect(err).To(HaveOccurred())
	})

	It("overrides only the fields the manifest sets", func() {
		content := "version = 0\n\n[components]\nskills_dir = \"my-skills\"\n"
		Expect(os.WriteFile(filepath.Join(sourceDir, "toolkit.toml"), []byte(content), 0o644)).To(Succeed())

		m, err := toolkit.LoadManifest(sourceDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(m.Components.SkillsDir).To(Equal("my-skills"))
		Expect(m.Components.CommandsDir).To(Equal("commands"))
		Expect(m.Uninstall.ScriptName).To(Equal("uninstall.sh"))
	})

	It("rejects an unsupported manifest version", func() {
		content := "version = 42\n"
		Expect(os.WriteFile(filepath.Join(sourceDir, "toolkit.toml"), []byte(content), 0o644)).To(Succeed())

		_, err := toolkit.LoadManifest(sourceDir)
		Expect(err).To(HaveOccurred())
	})

	It("rejects malformed TOML", func() {
		Expect(os.WriteFile(filepath.Join(sourceDir, "toolkit.toml"), []byte("[components\n"), 0o644)).To(Succeed())

		_, err := toolkit.LoadManifest(sourceDir)
		Expect(err).To(HaveOccurred())
	})
})
