package aggregate

// Item classification tables derived from Data Dragon. Only "completed"
// items (legendaries and finished boots) participate in core-build keys;
// components, consumables and starting items never do.

// BootsSentinel is the id every finished boots variant collapses to when
// building a core key, so boot choice does not fragment the buckets. 1001
// is the basic Boots item, which itself never counts as completed.
const BootsSentinel = 1001

// finishedBoots holds the tier-2 boot ids.
var finishedBoots = map[int]bool{
	3006: true, // Berserker's Greaves
	3009: true, // Boots of Swiftness
	3020: true, // Sorcerer's Shoes
	3047: true, // Plated Steelcaps
	3111: true, // Mercury's Treads
	3117: true, // Boots of Mobility
	3158: true, // Ionian Boots of Lucidity
}

// legendaryItems holds finished (legendary/mythic) item ids.
var legendaryItems = map[int]bool{
	2065: true, // Shurelya's Battlesong
	2501: true, // Overlord's Bloodmail
	2502: true, // Unending Despair
	2503: true, // Blackfire Torch
	2504: true, // Kaenic Rookern
	3001: true, // Evenshroud
	3003: true, // Archangel's Staff
	3004: true, // Manamune
	3011: true, // Chemtech Putrifier
	3026: true, // Guardian Angel
	3031: true, // Infinity Edge
	3032: true, // Yun Tal Wildarrows
	3033: true, // Mortal Reminder
	3036: true, // Lord Dominik's Regards
	3040: true, // Seraph's Embrace
	3041: true, // Mejai's Soulstealer
	3042: true, // Muramana
	3050: true, // Zeke's Convergence
	3053: true, // Sterak's Gage
	3065: true, // Spirit Visage
	3068: true, // Sunfire Aegis
	3071: true, // Black Cleaver
	3072: true, // Bloodthirster
	3073: true, // Experimental Hexplate
	3074: true, // Ravenous Hydra
	3075: true, // Thornmail
	3078: true, // Trinity Force
	3083: true, // Warmog's Armor
	3084: true, // Heartsteel
	3085: true, // Runaan's Hurricane
	3089: true, // Rabadon's Deathcap
	3091: true, // Wit's End
	3094: true, // Rapid Firecannon
	3100: true, // Lich Bane
	3102: true, // Banshee's Veil
	3107: true, // Redemption
	3109: true, // Knight's Vow
	3110: true, // Frozen Heart
	3115: true, // Nashor's Tooth
	3116: true, // Rylai's Crystal Scepter
	3118: true, // Malignance
	3119: true, // Winter's Approach
	3121: true, // Fimbulwinter
	3124: true, // Guinsoo's Rageblade
	3135: true, // Void Staff
	3137: true, // Cryptbloom
	3139: true, // Mercurial Scimitar
	3142: true, // Youmuu's Ghostblade
	3143: true, // Randuin's Omen
	3152: true, // Hextech Rocketbelt
	3153: true, // Blade of the Ruined King
	3156: true, // Maw of Malmortius
	3157: true, // Zhonya's Hourglass
	3161: true, // Spear of Shojin
	3165: true, // Morellonomicon
	3179: true, // Umbral Glaive
	3181: true, // Hullbreaker
	3190: true, // Locket of the Iron Solari
	3222: true, // Mikael's Blessing
	3302: true, // Terminus
	3504: true, // Ardent Censer
	3508: true, // Essence Reaver
	3742: true, // Dead Man's Plate
	3748: true, // Titanic Hydra
	3814: true, // Edge of Night
	4005: true, // Imperial Mandate
	4401: true, // Force of Nature
	4628: true, // Horizon Focus
	4629: true, // Cosmic Drive
	4633: true, // Riftmaker
	4636: true, // Night Harvester
	4637: true, // Demonic Embrace
	4644: true, // Crown of the Shattered Queen
	4645: true, // Shadowflame
	4646: true, // Stormsurge
	6035: true, // Silvermere Dawn
	6333: true, // Death's Dance
	6609: true, // Chempunk Chainsword
	6610: true, // Sundered Sky
	6616: true, // Staff of Flowing Water
	6617: true, // Moonstone Renewer
	6620: true, // Echoes of Helia
	6621: true, // Dawncore
	6630: true, // Goredrinker
	6631: true, // Stridebreaker
	6632: true, // Divine Sunderer
	6653: true, // Liandry's Torment
	6655: true, // Luden's Companion
	6656: true, // Everfrost
	6657: true, // Rod of Ages
	6662: true, // Iceborn Gauntlet
	6664: true, // Hollow Radiance
	6665: true, // Jak'Sho, The Protean
	6667: true, // Radiant Virtue
	6671: true, // Galeforce
	6672: true, // Kraken Slayer
	6673: true, // Immortal Shieldbow
	6675: true, // Navori Flickerblade
	6676: true, // The Collector
	6691: true, // Duskblade of Draktharr
	6692: true, // Eclipse
	6693: true, // Prowler's Claw
	6694: true, // Serylda's Grudge
	6695: true, // Serpent's Fang
	6696: true, // Axiom Arc
	6697: true, // Hubris
	6698: true, // Profane Hydra
	6699: true, // Voltaic Cyclosword
	6701: true, // Opportunity
}

// IsFinishedBoots reports whether id is a tier-2 boot.
func IsFinishedBoots(id int) bool {
	return finishedBoots[id]
}

// IsCompletedItem reports whether id counts toward a core build: a
// legendary or a tier-2 boot. Basic Boots (1001) is explicitly not
// completed.
func IsCompletedItem(id int) bool {
	return legendaryItems[id] || finishedBoots[id]
}
