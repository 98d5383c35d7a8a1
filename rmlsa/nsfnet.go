package rmlsa

// NSFNet returns the 14-node, 21-link NSFNET reference backbone with
// approximate physical distances in kilometers.
func NSFNet() *Topology {
	links := []Link{
		{0, 1, 1500},   // Seattle - San Francisco
		{0, 2, 2400},   // Seattle - Salt Lake City
		{1, 2, 900},    // San Francisco - Salt Lake City
		{1, 3, 600},    // San Francisco - San Diego
		{2, 5, 1200},   // Salt Lake City - Denver
		{3, 4, 800},    // San Diego - Phoenix
		{4, 5, 900},    // Phoenix - Denver
		{5, 6, 1000},   // Denver - Kansas City
		{5, 9, 1500},   // Denver - Houston
		{6, 7, 600},    // Kansas City - Champaign
		{6, 10, 500},   // Kansas City - Oklahoma
		{7, 8, 300},    // Champaign - Indianapolis
		{7, 11, 800},   // Champaign - Atlanta
		{8, 12, 400},   // Indianapolis - Pittsburgh
		{9, 10, 700},   // Houston - Oklahoma
		{9, 11, 1200},  // Houston - Atlanta
		{10, 11, 1100}, // Oklahoma - Atlanta
		{11, 12, 900},  // Atlanta - Pittsburgh
		{11, 13, 600},  // Atlanta - Washington DC
		{12, 13, 300},  // Pittsburgh - Washington DC
		{12, 7, 500},   // Pittsburgh - Champaign
	}
	topo, err := NewTopology(14, links)
	if err != nil {
		panic("nsfnet: " + err.Error())
	}
	topo.names = []string{
		"Seattle", "San Francisco", "Salt Lake City", "San Diego",
		"Phoenix", "Denver", "Kansas City", "Champaign", "Indianapolis",
		"Houston", "Oklahoma", "Atlanta", "Pittsburgh", "Washington DC",
	}
	return topo
}
