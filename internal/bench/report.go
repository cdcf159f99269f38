// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bench

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// WriteReport prints one aligned row per result.
func WriteReport(w io.Writer, results []Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "target\tP\tC\tops\telapsed\tMops/s\tns/op\t")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%.4fs\t%.2f\t%.2f\t\n",
			r.Target, r.Producers, r.Consumers, r.Ops,
			r.Elapsed.Seconds(), r.OpsPerSec()/1e6, r.NsPerOp())
	}
	return tw.Flush()
}
