package statuscmder_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	satchelcmder "github.com/papercomputeco/satchel/cmd/satchel"
	statuscmder "github.com/papercomputeco/satchel/cmd/satchel/status"
	"github.com/papercomputeco/satchel/pkg/dotdir"
)

var _ = Describe("NewStatusCmd", func() {
	It("creates a command with the correct use string", func() {
		cmd := statuscmder.NewStatusCmd()
		Expect(cmd.Use).To(Equal("status"))
	})

	It("rejects positional arguments", func() {
		cmd := statuscmder.NewStatusCmd()
		err := cmd.Args(cmd, []string{"extra"})
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Status command execution", func() {
	var target string

	execute := func(args ...string) error {
		cmd := satchelcmder.NewSatchelCmd()
		cmd.SetArgs(args)
		return cmd.Execute()
	}

	BeforeEach(func() {
		target = GinkgoT().TempDir()
	})

	It("succeeds when nothing is installed", func() {
		err := execute("status", "--target", target)
		Expect(err).NotTo(HaveOccurred())
	})

	It("reports an existing receipt", func() {
		receipt := &dotdir.Receipt{
			InstalledAt: time.Now(),
			Source:      "/tmp/toolkit",
			Files:       []string{"CLAUDE.md"},
			Counts:      map[string]int{"config": 1},
		}
		Expect(dotdir.NewManager().SaveReceipt(receipt, target)).To(Succeed())

		err := execute("status", "--target", target)
		Expect(err).NotTo(HaveOccurred())
	})
})
