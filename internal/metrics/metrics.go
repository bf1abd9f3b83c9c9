// Package metrics exposes application metrics collectors.
package metrics

const namespace = "rewardledger"

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func orUnknown(label string) string {
	if label == "" {
		return "unknown"
	}
	return label
}
