// Where: internal/injector/partition.go
// What: Partition tables for published observability layers.
// Why: Model region membership and account IDs as data, not branching logic.
package injector

// Partition describes one ARN partition in which agent layers are published.
// The published-region set is maintained by hand; a region missing from both
// partitions is simply not yet supported and must not block deployment.
type Partition struct {
	// ARNPartition is the partition tag used in constructed ARNs, e.g. "aws".
	ARNPartition string
	// AccountID owns the published layer versions in this partition.
	AccountID string
	// Regions is the set of regions with published layers.
	Regions map[string]struct{}
}

var commercial = Partition{
	ARNPartition: "aws",
	AccountID:    "752180062774",
	Regions: regionSet(
		"us-east-1",
		"us-east-2",
		"us-west-1",
		"us-west-2",
		"ca-central-1",
		"sa-east-1",
		"eu-west-1",
		"eu-west-2",
		"eu-west-3",
		"eu-central-1",
		"eu-north-1",
		"ap-northeast-1",
		"ap-northeast-2",
		"ap-south-1",
		"ap-southeast-1",
		"ap-southeast-2",
	),
}

var govCloud = Partition{
	ARNPartition: "aws-us-gov",
	AccountID:    "254067382080",
	Regions: regionSet(
		"us-gov-east-1",
		"us-gov-west-1",
	),
}

// PartitionFor resolves a region to the partition that publishes layers
// there. ok is false when neither partition covers the region.
func PartitionFor(region string) (Partition, bool) {
	if _, found := commercial.Regions[region]; found {
		return commercial, true
	}
	if _, found := govCloud.Regions[region]; found {
		return govCloud, true
	}
	return Partition{}, false
}

func regionSet(regions ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(regions))
	for _, region := range regions {
		set[region] = struct{}{}
	}
	return set
}
