package toolkit_test

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/satchel/pkg/toolkit"
)

var _ = Describe("RenderAssetMD and ParseAssetMD", func() {
	It("round-trips frontmatter and body", func() {
		in := &toolkit.Asset{
			Name:        "commit-helper",
			Description: "Writes conventional commit messages. Use when committing.",
			Version:     "0.2.0",
			Tags:        []string{"git", "commits"},
			Content:     "## Commit helper\n\n1. Stage hunks\n2. Write the message",
			CreatedAt:   time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC),
		}

		rendered := toolkit.RenderAssetMD(in)
		Expect(rendered).To(HavePrefix("---\n"))
		Expect(rendered).To(ContainSubstring("name: commit-helper"))
		Expect(rendered).To(ContainSubstring("tags: [git, commits]"))

		out, err := toolkit.ParseAssetMD(rendered)
		Expect(err).NotTo(HaveOccurred())
		Expect(out.Name).To(Equal(in.Name))
		Expect(out.Description).To(Equal(in.Description))
		Expect(out.Version).To(Equal(in.Version))
		Expect(out.Tags).To(Equal(in.Tags))
		Expect(out.Content).To(Equal(in.Content))
		Expect(out.CreatedAt.Equal(in.CreatedAt)).To(BeTrue())
	})

	It("defaults the version when frontmatter omits it", func() {
		a, err := toolkit.ParseAssetMD("---\nname: bare\n---\n\nbody\n")
		Expect(err).NotTo(HaveOccurred())
		Expect(a.Version).To(Equal("0.1.0"))
	})

	It("rejects documents without frontmatter", func() {
		_, err := toolkit.ParseAssetMD("# just markdown\n")
		Expect(err).To(HaveOccurred())
	})

	It("rejects unterminated frontmatter", func() {
		_, err := toolkit.ParseAssetMD("---\nname: x\n")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("ListAssets", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	It("returns nil for a missing directory", func() {
		assets, err := toolkit.ListAssets(filepath.Join(dir, "absent"), "skill")
		Expect(err).NotTo(HaveOccurred())
		Expect(assets).To(BeNil())
	})

	It("lists parseable assets and tags them with the kind", func() {
		one := "---\nname: one\ndescription: first\n---\n\nbody one\n"
		two := "---\nname: two\ndescription: second\n---\n\nbody two\n"
		Expect(os.WriteFile(filepath.Join(dir, "one.md"), []byte(one), 0o644)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(dir, "two.md"), []byte(two), 0o644)).To(Succeed())
		// Non-asset noise the lister must ignore.
		Expect(os.WriteFile(filepath.Join(dir, "README.txt"), []byte("nope"), 0o644)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(dir, "plain.md"), []byte("no frontmatter"), 0o644)).To(Succeed())

		assets, err := toolkit.ListAssets(dir, "command")
		Expect(err).NotTo(HaveOccurred())
		Expect(assets).To(HaveLen(2))
		for _, a := range assets {
			Expect(a.Kind).To(Equal("command"))
		}
	})

	It("uses the filename as the asset name", func() {
		content := "---\nname: ignored\n---\n\nbody\n"
		Expect(os.WriteFile(filepath.Join(dir, "real-name.md"), []byte(content), 0o644)).To(Succeed())

		assets, err := toolkit.ListAssets(dir, "skill")
		Expect(err).NotTo(HaveOccurred())
		Expect(assets).To(HaveLen(1))
		Expect(assets[0].Name).To(Equal("real-name"))
	})
})

var _ = Describe("ListSkillDirs", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	It("returns nil for a missing directory", func() {
		assets, err := toolkit.ListSkillDirs(filepath.Join(dir, "absent"))
		Expect(err).NotTo(HaveOccurred())
		Expect(assets).To(BeNil())
	})

	It("lists directories holding a SKILL.md, named after the directory", func() {
		content := "---\nname: ignored\ndescription: reviews code\n---\n\nbody\n"
		Expect(os.MkdirAll(filepath.Join(dir, "review"), 0o755)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(dir, "review", "SKILL.md"), []byte(content), 0o644)).To(Succeed())
		// A directory without SKILL.md is not a skill.
		Expect(os.MkdirAll(filepath.Join(dir, "assets"), 0o755)).To(Succeed())

		assets, err := toolkit.ListSkillDirs(dir)
		Expect(err).NotTo(HaveOccurred())
		Expect(assets).To(HaveLen(1))
		Expect(assets[0].Name).To(Equal("review"))
		Expect(assets[0].Kind).To(Equal("skill"))
	})
})

var _ = Describe("FindAsset", func() {
	It("returns nil for an absent asset", func() {
		a, err := toolkit.FindAsset(GinkgoT().TempDir(), "skill", "nope")
		Expect(err).NotTo(HaveOccurred())
		Expect(a).To(BeNil())
	})

	It("loads a named asset", func() {
		dir := GinkgoT().TempDir()
		content := "---\ndescription: found\n---\n\nthe body\n"
		Expect(os.WriteFile(filepath.Join(dir, "target.md"), []byte(content), 0o644)).To(Succeed())

		a, err := toolkit.FindAsset(dir, "agent", "target")
		Expect(err).NotTo(HaveOccurred())
		Expect(a).NotTo(BeNil())
		Expect(a.Name).To(Equal("target"))
		Expect(a.Kind).To(Equal("agent"))
		Expect(a.Content).To(Equal("the body"))
	})
})

var _ = Describe("ValidAssetKind", func() {
	It("accepts the known kinds", func() {
		for _, k := range []string{"skill", "command", "agent"} {
			Expect(toolkit.ValidAssetKind(k)).To(BeTrue())
		}
	})

	It("rejects anything else", func() {
		Expect(toolkit.ValidAssetKind("hook")).To(BeFalse())
	})
})
