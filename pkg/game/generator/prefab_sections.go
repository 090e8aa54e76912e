package generator

// SunkenChapel is a small hand drawn level
var SunkenChapel = Template{
	Name:   "Sunken Chapel",
	Width:  18,
	Height: 12,
	Layout: `
##################
#@   #      #    #
#    #  ~~  #  ! #
#    D  ~~  D    #
#    #      #    #
###D####++####D###
#    ;;;;;;;;    #
# g  ;      ;  g #
#    ;  **  ;    #
#    ;;;;;;;;  > #
#               %#
##################`,
}

// OrcCamp is a moated camp with an orc leader in the middle
var OrcCamp = Template{
	Name:   "Orc Camp",
	Width:  12,
	Height: 12,
	Horiz:  PlaceCenter,
	Vert:   PlaceMiddle,
	Layout: `

 ~~~~o~~~~~
 ~        ~
 ~ ^    ^ ~
 ~   oO   ~
 o  %  !  o
 ~   o    ~
 ~ ^    ^ ~
 ~        ~
 ~~~~o~~~~~
`,
}

// FungalShrine is a walled grove guarded by shamblers
var FungalShrine = Template{
	Name:   "Fungal Shrine",
	Width:  9,
	Height: 7,
	Horiz:  PlaceCenter,
	Vert:   PlaceMiddle,
	Layout: `

 #######
 #f   f#
 #  !  D
 #f   f#
 #######
`,
}

// UndergroundGate holds the way down behind dark elf sentries
var UndergroundGate = Template{
	Name:   "Underground Gate",
	Width:  10,
	Height: 7,
	Horiz:  PlaceRight,
	Vert:   PlaceMiddle,
	Layout: `

 ########
 #e    e#
 D   >  #
 #e    e#
 ########
`,
}

// GuardPost is a small walled post with a door on either side
var GuardPost = Template{
	Name:   "Guard Post",
	Width:  10,
	Height: 10,
	Horiz:  PlaceCenter,
	Vert:   PlaceMiddle,
	Layout: `

 ########
 #o    o#
 #  !%  #
 D      D
 #  ^^  #
 #o    o#
 ########
`,
}

// Vaults are the set pieces PrefabVaults chooses from
var Vaults = []Template{
	{
		Name: "Trapped Hoard", Width: 5, Height: 5, MinDepth: 1, MaxDepth: 6,
		Layout: `

 ^!^
 !%!
 ^!^
`,
	},
	{
		Name: "Goblin Den", Width: 7, Height: 5, MinDepth: 1, MaxDepth: 4,
		Layout: `

 ##D##
 #g%g#
 #####
`,
	},
	{
		Name: "Candlelit Shrine", Width: 7, Height: 5, MinDepth: 3,
		Layout: `

 *   *
   !
 *   *
`,
	},
	{
		Name: "Pillared Hall", Width: 7, Height: 5, MinDepth: 2,
		Layout: `

 # # #
  k k
 # # #
`,
	},
}
